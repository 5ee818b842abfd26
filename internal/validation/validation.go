// Package validation checks user-supplied paths before any file is opened
// or created.
package validation

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// ValidatePath checks a path for emptiness, length limits and control
// characters. field names the flag or argument in the error.
func ValidatePath(field, path string) error {
	if path == "" {
		return errors.NewValidation(field, path, "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation(field, path[:64]+"...", "path too long")
	}
	// Check for null bytes and other control characters
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation(field, path, "control character not allowed")
		}
	}
	return nil
}

// Output is a path the run will write to.
type Output struct {
	Field string
	Path  string
}

// ValidateOutputs rejects outputs that would overwrite the input or each
// other. Empty output paths are skipped; "-" is never compared.
func ValidateOutputs(input string, outputs ...Output) error {
	seen := map[string]string{}
	if input != "" && input != "-" {
		seen[canonical(input)] = "corpus"
	}
	for _, o := range outputs {
		if o.Path == "" {
			continue
		}
		if err := ValidatePath(o.Field, o.Path); err != nil {
			return err
		}
		if o.Path == "-" {
			continue
		}
		key := canonical(o.Path)
		if prev, ok := seen[key]; ok {
			return errors.NewValidation(o.Field, o.Path, "same file as "+prev)
		}
		seen[key] = o.Field
	}
	return nil
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return strings.TrimSuffix(filepath.Clean(path), string(filepath.Separator))
}
