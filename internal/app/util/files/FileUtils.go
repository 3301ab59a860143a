package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its extension.
// A leading-dot name such as ".wav" is kept whole.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// DefaultOutputPath derives <outputDir>/<stem>.txt for inputPath without touching the filesystem.
func DefaultOutputPath(inputPath, outputDir string) string {
	return filepath.Join(outputDir, Stem(inputPath)+".txt")
}

// ResolveOutputPath returns explicit verbatim when set. Otherwise it creates
// outputDir if absent and returns <outputDir>/<stem>.txt.
func ResolveOutputPath(inputPath, explicit, outputDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	return DefaultOutputPath(inputPath, outputDir), nil
}

// WriteTextFile writes text to path exactly as given.
func WriteTextFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadOutputFile reads a whisper.cpp .txt file. whisper.cpp prefixes the
// first segment with one space and ends the file with a newline; only those
// two are removed.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	text := strings.TrimPrefix(string(content), " ")
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
