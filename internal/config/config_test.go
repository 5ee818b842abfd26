package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/readability"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions() error = %v", err)
	}
	if opts.Window != 3 || opts.Threshold != 2.0 || opts.TopK != 20 {
		t.Errorf("defaults = %+v", opts)
	}
	if !reflect.DeepEqual(opts.CharNGrams, []int{2, 3}) {
		t.Errorf("CharNGrams = %v, want [2 3]", opts.CharNGrams)
	}
	if cfg.Morphology.CacheSize != 4096 {
		t.Errorf("CacheSize = %d, want 4096", cfg.Morphology.CacheSize)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
ngram:
  word_sizes: [2, 3]
collocation:
  window: 5
anomaly:
  threshold: 2.5
comparison:
  subsets:
    makki: "1,6-7"
    madani: "2-5"
workers: 4
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions() error = %v", err)
	}
	if !reflect.DeepEqual(opts.WordNGrams, []int{2, 3}) || opts.Window != 5 || opts.Threshold != 2.5 || opts.Workers != 4 {
		t.Errorf("options = %+v", opts)
	}
	// unset sections keep their defaults
	if !reflect.DeepEqual(opts.CharNGrams, []int{2, 3}) || opts.TopK != 20 {
		t.Errorf("defaults lost: %+v", opts)
	}
	if len(opts.Subsets) != 2 || opts.Subsets[0].Name != "makki" || opts.Subsets[1].Name != "madani" {
		t.Fatalf("Subsets = %+v, want makki then madani", opts.Subsets)
	}
	if !opts.Subsets[0].Chapters.Contains(7) || opts.Subsets[0].Chapters.Contains(2) {
		t.Errorf("makki chapters = %s", opts.Subsets[0].Chapters)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Collocation.Window != 3 {
		t.Errorf("Window = %d, want 3", cfg.Collocation.Window)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"ngram size", "ngram:\n  word_sizes: [1]\n", "ngram.word_sizes[0]"},
		{"window", "collocation:\n  window: 0\n", "collocation.window"},
		{"threshold", "anomaly:\n  threshold: -1\n", "anomaly.threshold"},
		{"top k", "ranking:\n  top_k: 0\n", "ranking.top_k"},
		{"cache size", "morphology:\n  cache_size: -5\n", "morphology.cache_size"},
		{"selector", "comparison:\n  subsets:\n    bad: \"3-1\"\n", "comparison.subsets.bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Parse() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}

	for _, bad := range []string{"unknown_key: 1\n", "ngram: [\n", "comparison:\n  subsets: [1, 2]\n"} {
		_, err := Parse([]byte(bad))
		var pe *errors.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", bad, err)
		}
	}
}

func TestCommonWords(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "common.txt"), []byte("# frequent\nفي\n\n  من  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte("readability:\n  common_words_file: common.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions() error = %v", err)
	}
	if want := []string{"في", "من"}; !reflect.DeepEqual(opts.CommonWords, want) {
		t.Errorf("CommonWords = %q, want %q", opts.CommonWords, want)
	}

	cfg.Readability.CommonWordsFile = Builtin
	opts, _ = cfg.ToOptions()
	if len(opts.CommonWords) != len(readability.DefaultCommonWords) {
		t.Errorf("builtin CommonWords = %d words", len(opts.CommonWords))
	}

	cfg.Readability.CommonWordsFile = "missing.txt"
	var ioe *errors.IOError
	if _, err := cfg.ToOptions(); !errors.As(err, &ioe) {
		t.Errorf("ToOptions() error = %v, want *IOError", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var ioe *errors.IOError
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.As(err, &ioe) {
		t.Errorf("Load() error = %v, want *IOError", err)
	}
}

func TestPort(t *testing.T) {
	cfg := Default()
	if p, err := cfg.Port(); err != nil || p != nil {
		t.Errorf("Port() without lexicon = %v, %v", p, err)
	}

	dir := t.TempDir()
	lex := `<lexicon><entry form="الحمد" lemma="حمد" root="حمد"/></lexicon>`
	if err := os.WriteFile(filepath.Join(dir, "lex.xml"), []byte(lex), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Morphology.Lexicon = "lex.xml"
	cfg.dir = dir
	p, err := cfg.Port()
	if err != nil {
		t.Fatalf("Port() error = %v", err)
	}
	if r := p.Root("الحمد"); !r.Resolved || r.Value != "حمد" {
		t.Errorf("Root() = %+v", r)
	}
}

func TestSubsetsRoundTrip(t *testing.T) {
	in := Subsets{{Name: "b", Chapters: "2"}, {Name: "a", Chapters: "1-3"}}
	node, err := in.MarshalYAML()
	if err != nil {
		t.Fatal(err)
	}
	var out Subsets
	if err := out.UnmarshalYAML(node.(*yaml.Node)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestReadWordList(t *testing.T) {
	words, err := ReadWordList(strings.NewReader("a\n#b\n\nc\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(words, []string{"a", "c"}) {
		t.Errorf("ReadWordList() = %q", words)
	}
}
