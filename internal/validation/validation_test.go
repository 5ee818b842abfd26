package validation

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/versestats/core/errors"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "corpus.txt", false},
		{"nested", "data/quran/corpus.txt.xz", false},
		{"arabic name", "مصحف.txt", false},
		{"stdin", "-", false},
		{"empty", "", true},
		{"null byte", "corpus\x00.txt", true},
		{"newline", "corpus\n.txt", true},
		{"too long", strings.Repeat("a", MaxPathLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath("corpus", tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("ValidatePath() error should match ErrInvalidInput")
			}
		})
	}
}

func TestValidateOutputs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "corpus.txt")

	tests := []struct {
		name    string
		outputs []Output
		field   string
	}{
		{"distinct", []Output{{"json", filepath.Join(dir, "r.json")}, {"db", filepath.Join(dir, "r.db")}}, ""},
		{"unset outputs", []Output{{"json", ""}, {"db", ""}}, ""},
		{"stdout twice", []Output{{"json", "-"}, {"metrics-file", "-"}}, ""},
		{"overwrites corpus", []Output{{"json", filepath.Join(dir, ".", "corpus.txt")}}, "json"},
		{"same output twice", []Output{{"json", filepath.Join(dir, "x")}, {"db", filepath.Join(dir, "sub", "..", "x")}}, "db"},
		{"bad path", []Output{{"metrics-file", "m\x00"}}, "metrics-file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputs(in, tt.outputs...)
			if tt.field == "" {
				if err != nil {
					t.Errorf("ValidateOutputs() error = %v", err)
				}
				return
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("ValidateOutputs() error = %v, want field %s", err, tt.field)
			}
		})
	}
}
