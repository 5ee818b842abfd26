package analysis

import (
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/readability"
)

// Subset is a named set of chapters compared against the others.
type Subset struct {
	Name     string
	Chapters corpus.ChapterSet
}

// Options configures an Analyzer.
type Options struct {
	WordNGrams []int
	CharNGrams []int
	Window     int
	Threshold  float64
	TopK       int

	PolysyllableThreshold int
	FrequentWordsTopK     int
	// CommonWords replaces the derived frequent-word set when non-empty.
	CommonWords []string

	Subsets []Subset
	Workers int

	// OnDimension, when set, is called after every dimension and scope.
	OnDimension func(DimensionStat)
}

// DefaultOptions returns the default analysis configuration.
func DefaultOptions() Options {
	return Options{
		WordNGrams:            []int{2},
		CharNGrams:            []int{2, 3},
		Window:                3,
		Threshold:             anomaly.DefaultThreshold,
		TopK:                  20,
		PolysyllableThreshold: readability.DefaultPolysyllableThreshold,
		FrequentWordsTopK:     100,
	}
}

// Validate rejects out-of-range options.
func (o Options) Validate() error {
	for i, n := range o.WordNGrams {
		if n < 2 {
			return errors.NewValidation(fmt.Sprintf("ngram.word_sizes[%d]", i), strconv.Itoa(n), "must be at least 2")
		}
	}
	for i, n := range o.CharNGrams {
		if n < 2 {
			return errors.NewValidation(fmt.Sprintf("ngram.char_sizes[%d]", i), strconv.Itoa(n), "must be at least 2")
		}
	}
	if o.Window < 1 {
		return errors.NewValidation("collocation.window", strconv.Itoa(o.Window), "must be at least 1")
	}
	if !(o.Threshold > 0) {
		return errors.NewValidation("anomaly.threshold", strconv.FormatFloat(o.Threshold, 'g', -1, 64), "must be positive")
	}
	if o.TopK < 1 {
		return errors.NewValidation("ranking.top_k", strconv.Itoa(o.TopK), "must be at least 1")
	}
	if o.PolysyllableThreshold < 1 {
		return errors.NewValidation("readability.polysyllable_threshold", strconv.Itoa(o.PolysyllableThreshold), "must be at least 1")
	}
	if o.FrequentWordsTopK < 1 {
		return errors.NewValidation("readability.frequent_words_top_k", strconv.Itoa(o.FrequentWordsTopK), "must be at least 1")
	}
	if o.Workers < 0 {
		return errors.NewValidation("workers", strconv.Itoa(o.Workers), "must not be negative")
	}
	seen := make(map[string]bool, len(o.Subsets))
	for _, s := range o.Subsets {
		if s.Name == "" {
			return errors.NewValidation("comparison.subsets", "", "subset name must not be empty")
		}
		if seen[s.Name] {
			return errors.NewValidation("comparison.subsets", s.Name, "duplicate subset name")
		}
		seen[s.Name] = true
	}
	return nil
}
