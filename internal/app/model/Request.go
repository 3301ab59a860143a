package model

import (
	"github.com/go-playground/validator/v10"
)

// TranscriptionRequest is built once from the command line and not modified afterwards.
type TranscriptionRequest struct {
	InputPath  string    `validate:"required"`
	Model      ModelSize `validate:"required,oneof=tiny base small medium large large-v1 large-v2 large-v3"`
	OutputPath string
	Language   string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request invariants.
func (r TranscriptionRequest) Validate() error {
	return validate.Struct(r)
}

// LanguageOrAuto returns the requested language, "auto" when unset.
func (r TranscriptionRequest) LanguageOrAuto() string {
	if r.Language == "" {
		return "auto"
	}
	return r.Language
}
