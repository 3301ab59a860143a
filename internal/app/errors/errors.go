package errors

import (
	"errors"
	"fmt"
	"io"
)

// Kind classifies a terminal failure of a transcription run.
type Kind string

const (
	KindToolNotFound  Kind = "tool_not_found"
	KindToolExecution Kind = "tool_execution"
	KindModelLoad     Kind = "model_load"
	KindInputNotFound Kind = "input_not_found"
	KindTranscription Kind = "transcription"
	KindOutputWrite   Kind = "output_write"
)

// Sentinels for errors.Is checks against a Kind.
var (
	ErrToolNotFound  = &Error{kind: KindToolNotFound, message: "decoding tool not found"}
	ErrToolExecution = &Error{kind: KindToolExecution, message: "decoding tool execution failed"}
	ErrModelLoad     = &Error{kind: KindModelLoad, message: "model load failed"}
	ErrInputNotFound = &Error{kind: KindInputNotFound, message: "input file not found"}
	ErrTranscription = &Error{kind: KindTranscription, message: "transcription failed"}
	ErrOutputWrite   = &Error{kind: KindOutputWrite, message: "output write failed"}
)

// Error represents a classified error with optional remediation hints
type Error struct {
	kind    Kind
	message string
	cause   error
	hints   []string
}

// New creates a new error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap wraps an error with a kind and additional context
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: message, cause: err}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: err}
}

// WithHints returns a copy of e carrying the given remediation hints.
func (e *Error) WithHints(hints ...string) *Error {
	cp := *e
	cp.hints = append(append([]string(nil), e.hints...), hints...)
	return &cp
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// Kind returns the failure kind
func (e *Error) Kind() Kind {
	return e.kind
}

// Hints returns the remediation hints attached to the error
func (e *Error) Hints() []string {
	return e.hints
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Report writes the diagnostic for err to w: the message, then one line per hint.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	var e *Error
	if errors.As(err, &e) {
		for _, hint := range e.hints {
			fmt.Fprintf(w, "  %s\n", hint)
		}
	}
}
