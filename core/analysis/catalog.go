package analysis

import (
	"strconv"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/stats"
)

// Family classifies dimensions by the shape of their keys.
type Family string

const (
	FamilyFrequency    Family = "frequency"
	FamilyNGram        Family = "ngram"
	FamilyCoOccurrence Family = "cooccurrence"
	FamilyCollocation  Family = "collocation"
	FamilyPositional   Family = "positional"
)

// Dimension is one catalog entry: a projection, an extractor and a key
// renderer bound together. PerGroup dimensions also run anomaly detection
// inside every chapter and verse table.
type Dimension struct {
	Name     string
	Family   Family
	PerGroup bool
	run      func(in runInput) ScopeResult
}

type runInput struct {
	corpus   *corpus.Corpus
	scope    aggregate.Scope
	workers  int
	topK     int
	detector *anomaly.Detector
	perGroup bool
}

func perGroup(d Dimension) Dimension {
	d.PerGroup = true
	return d
}

func newDimension[T any, K comparable](
	name string,
	family Family,
	project func(*corpus.Verse) []T,
	ex aggregate.Extractor[T, K],
	render func(K) string,
) Dimension {
	return Dimension{Name: name, Family: family, run: func(in runInput) ScopeResult {
		groups := aggregate.Groups(in.corpus, in.scope, project)
		results := aggregate.Run(groups, ex, in.workers)

		out := ScopeResult{Scope: in.scope, Groups: make([]GroupTable, len(results))}
		for i, r := range results {
			out.Groups[i] = GroupTable{
				Group:   r.Group,
				Items:   r.Items,
				Summary: renderSummary(stats.SummarizeTable(r.Table, in.topK), render),
			}
		}
		switch {
		case in.detector == nil:
		case in.scope == aggregate.ScopeCorpus:
			o := renderOutcome(anomaly.DetectTable(in.detector, results[0].Table), render)
			out.Anomaly = &o
		case in.perGroup:
			for i, r := range results {
				o := renderOutcome(anomaly.DetectTable(in.detector, r.Table), render)
				out.Groups[i].Anomaly = &o
			}
		}
		return out
	}}
}

func renderSummary[K comparable](s stats.TableSummary[K], render func(K) string) stats.TableSummary[string] {
	out := stats.TableSummary[string]{
		Status:   s.Status,
		Total:    s.Total,
		Unique:   s.Unique,
		Mean:     s.Mean,
		Variance: s.Variance,
		StdDev:   s.StdDev,
		Top:      make([]aggregate.Entry[string], len(s.Top)),
	}
	for i, e := range s.Top {
		out.Top[i] = aggregate.Entry[string]{Key: render(e.Key), Count: e.Count, First: e.First}
	}
	return out
}

func renderOutcome[K comparable](o anomaly.Outcome[K], render func(K) string) anomaly.Outcome[string] {
	out := anomaly.Outcome[string]{
		Status:    o.Status,
		Count:     o.Count,
		Mean:      o.Mean,
		StdDev:    o.StdDev,
		Threshold: o.Threshold,
		Flags:     make([]anomaly.Flag[string], len(o.Flags)),
	}
	for i, f := range o.Flags {
		out.Flags[i] = anomaly.Flag[string]{Key: render(f.Key), Value: f.Value, Z: f.Z, Direction: f.Direction}
	}
	return out
}

// Catalog builds every dimension for opts, in report order. It fails when an
// n-gram size or the collocation window is out of range.
func Catalog(opts Options) ([]Dimension, error) {
	u := func(key aggregate.KeyFunc[tok, string]) aggregate.Extractor[tok, string] {
		return aggregate.Unigram(key)
	}
	co := func(key aggregate.KeyFunc[tok, string]) aggregate.Extractor[tok, aggregate.Pair[string]] {
		return aggregate.CoOccurrence(key)
	}

	dims := []Dimension{
		perGroup(newDimension("word", FamilyFrequency, aggregate.Tokens, u(wordKey), str)),
		newDimension("character", FamilyFrequency, aggregate.Letters, aggregate.Unigram(charKey), str),
		perGroup(newDimension("root", FamilyFrequency, aggregate.Tokens, u(rootKey), str)),
		newDimension("lemma", FamilyFrequency, aggregate.Tokens, u(lemmaKey), str),
		newDimension("gematria", FamilyFrequency, aggregate.Tokens, aggregate.Unigram(gematriaKey), strconv.Itoa),
		newDimension("semantic-group", FamilyFrequency, aggregate.Tokens, u(semanticKey), str),
	}

	for _, n := range opts.WordNGrams {
		ex, err := aggregate.NewNGrams(n, surface, " ")
		if err != nil {
			return nil, err
		}
		dims = append(dims, perGroup(newDimension("word-ngram-"+strconv.Itoa(n), FamilyNGram, aggregate.Tokens, ex, str)))
	}
	for _, n := range opts.CharNGrams {
		ex, err := aggregate.NewNGrams(n, runeStr, "")
		if err != nil {
			return nil, err
		}
		dims = append(dims, perGroup(newDimension("char-ngram-"+strconv.Itoa(n), FamilyNGram, aggregate.Letters, ex, str)))
	}

	dims = append(dims,
		newDimension("word-cooccurrence", FamilyCoOccurrence, aggregate.Tokens, co(wordKey), pairStr),
		newDimension("root-cooccurrence", FamilyCoOccurrence, aggregate.Tokens, co(rootKey), pairStr),
		newDimension("lemma-cooccurrence", FamilyCoOccurrence, aggregate.Tokens, co(lemmaKey), pairStr),
		newDimension("semantic-group-cooccurrence", FamilyCoOccurrence, aggregate.Tokens, co(semanticKey), pairStr),
	)

	colloc, err := aggregate.NewCollocations(opts.Window, wordKey)
	if err != nil {
		return nil, err
	}
	dims = append(dims,
		newDimension("word-collocation", FamilyCollocation, aggregate.Tokens, colloc, pairStr),
		newDimension("first-root", FamilyPositional, aggregate.Tokens, aggregate.First(aggregate.KeyFunc[tok, string](rootKey)), str),
		newDimension("last-root", FamilyPositional, aggregate.Tokens, aggregate.Last(aggregate.KeyFunc[tok, string](rootKey)), str),
		newDimension("first-gematria", FamilyPositional, aggregate.Tokens, aggregate.First(aggregate.KeyFunc[tok, int](gematriaKey)), strconv.Itoa),
		newDimension("last-gematria", FamilyPositional, aggregate.Tokens, aggregate.Last(aggregate.KeyFunc[tok, int](gematriaKey)), strconv.Itoa),
	)
	return dims, nil
}
