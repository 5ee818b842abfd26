// Package config loads the YAML run configuration for versestats.
//
// A missing file is not an error: Default() applies. Relative paths inside
// the file (lexicon, common words) resolve against the file's directory.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/versestats/core/analysis"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/morph"
	"github.com/FocuswithJustin/versestats/core/readability"
)

// Builtin as readability.common_words_file selects the built-in word list.
const Builtin = "builtin"

// Config is the run configuration.
type Config struct {
	NGram       NGramConfig       `yaml:"ngram"`
	Collocation CollocationConfig `yaml:"collocation"`
	Anomaly     AnomalyConfig     `yaml:"anomaly"`
	Ranking     RankingConfig     `yaml:"ranking"`
	Readability ReadabilityConfig `yaml:"readability"`
	Comparison  ComparisonConfig  `yaml:"comparison"`
	Morphology  MorphologyConfig  `yaml:"morphology"`
	Workers     int               `yaml:"workers"`

	dir string
}

type NGramConfig struct {
	WordSizes []int `yaml:"word_sizes"`
	CharSizes []int `yaml:"char_sizes"`
}

type CollocationConfig struct {
	Window int `yaml:"window"`
}

type AnomalyConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type RankingConfig struct {
	TopK int `yaml:"top_k"`
}

type ReadabilityConfig struct {
	PolysyllableThreshold int    `yaml:"polysyllable_threshold"`
	FrequentWordsTopK     int    `yaml:"frequent_words_top_k"`
	CommonWordsFile       string `yaml:"common_words_file,omitempty"`
}

type ComparisonConfig struct {
	Subsets Subsets `yaml:"subsets,omitempty"`
}

type MorphologyConfig struct {
	Lexicon   string `yaml:"lexicon,omitempty"`
	CacheSize int    `yaml:"cache_size"`
}

// SubsetSpec names a chapter-set selector such as "1-6,10-15".
type SubsetSpec struct {
	Name     string
	Chapters string
}

// Subsets keeps the order subsets were written in.
type Subsets []SubsetSpec

// UnmarshalYAML decodes a mapping of name to selector.
func (s *Subsets) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: comparison.subsets must be a mapping of name to chapters", value.Line)
	}
	out := make(Subsets, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: subset %q must be a chapter selector string", v.Line, k.Value)
		}
		out = append(out, SubsetSpec{Name: k.Value, Chapters: v.Value})
	}
	*s = out
	return nil
}

// MarshalYAML encodes subsets back to an ordered mapping.
func (s Subsets) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, sub := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: sub.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: sub.Chapters, Style: yaml.DoubleQuotedStyle})
	}
	return node, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	d := analysis.DefaultOptions()
	return &Config{
		NGram:       NGramConfig{WordSizes: d.WordNGrams, CharSizes: d.CharNGrams},
		Collocation: CollocationConfig{Window: d.Window},
		Anomaly:     AnomalyConfig{Threshold: d.Threshold},
		Ranking:     RankingConfig{TopK: d.TopK},
		Readability: ReadabilityConfig{
			PolysyllableThreshold: d.PolysyllableThreshold,
			FrequentWordsTopK:     d.FrequentWordsTopK,
		},
		Morphology: MorphologyConfig{CacheSize: 4096},
	}
}

// Load reads the configuration at path. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML over Default() and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, &errors.ParseError{Format: "config", Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field range and chapter selector without touching
// the filesystem.
func (c *Config) Validate() error {
	if c.Morphology.CacheSize < 0 {
		return errors.NewValidation("morphology.cache_size", strconv.Itoa(c.Morphology.CacheSize), "must not be negative")
	}
	_, err := c.options()
	return err
}

func (c *Config) options() (analysis.Options, error) {
	opts := analysis.Options{
		WordNGrams:            c.NGram.WordSizes,
		CharNGrams:            c.NGram.CharSizes,
		Window:                c.Collocation.Window,
		Threshold:             c.Anomaly.Threshold,
		TopK:                  c.Ranking.TopK,
		PolysyllableThreshold: c.Readability.PolysyllableThreshold,
		FrequentWordsTopK:     c.Readability.FrequentWordsTopK,
		Workers:               c.Workers,
	}
	for _, s := range c.Comparison.Subsets {
		set, err := corpus.ParseChapterSet(s.Chapters)
		if err != nil {
			return opts, &errors.ValidationError{
				Field:   "comparison.subsets." + s.Name,
				Value:   s.Chapters,
				Message: "invalid chapter selector",
				Err:     err,
			}
		}
		opts.Subsets = append(opts.Subsets, analysis.Subset{Name: s.Name, Chapters: set})
	}
	return opts, opts.Validate()
}

// ToOptions converts the configuration to analysis options, reading the
// common-words file when one is configured.
func (c *Config) ToOptions() (analysis.Options, error) {
	opts, err := c.options()
	if err != nil {
		return opts, err
	}
	switch f := c.Readability.CommonWordsFile; f {
	case "":
	case Builtin:
		opts.CommonWords = readability.DefaultCommonWords
	default:
		words, err := ReadWordListFile(c.resolve(f))
		if err != nil {
			return opts, err
		}
		opts.CommonWords = words
	}
	return opts, nil
}

// Port returns the configured morphology capability: a memoized XML lexicon,
// or nil when none is configured.
func (c *Config) Port() (morph.Port, error) {
	if c.Morphology.Lexicon == "" {
		return nil, nil
	}
	lex, err := morph.LoadLexiconFile(c.resolve(c.Morphology.Lexicon))
	if err != nil {
		return nil, err
	}
	if c.Morphology.CacheSize == 0 {
		return lex, nil
	}
	return morph.NewCached(lex, c.Morphology.CacheSize), nil
}

func (c *Config) resolve(path string) string {
	if c.dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// ReadWordList reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadWordListFile reads a word list from path.
func ReadWordListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()
	words, err := ReadWordList(f)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return words, nil
}
