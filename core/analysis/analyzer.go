// Package analysis runs every dimension of the catalog over a corpus and
// composes the cross-dimension results into a Report.
package analysis

import (
	"context"
	"time"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/readability"
)

// Analyzer holds a validated configuration and its catalog.
type Analyzer struct {
	opts     Options
	dims     []Dimension
	detector *anomaly.Detector
}

// New validates opts and builds the catalog. Every configuration error is
// reported here, before any analysis runs.
func New(opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dims, err := Catalog(opts)
	if err != nil {
		return nil, err
	}
	det, err := anomaly.New(opts.Threshold)
	if err != nil {
		return nil, err
	}
	if _, err := readability.NewScorer(opts.PolysyllableThreshold, nil); err != nil {
		return nil, err
	}
	return &Analyzer{opts: opts, dims: dims, detector: det}, nil
}

// Dimensions returns the catalog in report order.
func (a *Analyzer) Dimensions() []Dimension { return a.dims }

// Run analyzes c. It returns ctx.Err() if ctx is cancelled between steps.
func (a *Analyzer) Run(ctx context.Context, c *corpus.Corpus) (*Report, error) {
	r := &Report{
		Corpus: CorpusInfo{
			Verses:      c.Len(),
			Chapters:    len(c.Chapters()),
			Tokens:      c.TokenCount(),
			Fingerprint: c.Fingerprint(),
			Morphology:  c.MorphStats(),
		},
	}

	for _, d := range a.dims {
		res := DimensionResult{Name: d.Name, Family: d.Family}
		for _, scope := range aggregate.Scopes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			sr := d.run(runInput{
				corpus:   c,
				scope:    scope,
				workers:  a.opts.Workers,
				topK:     a.opts.TopK,
				detector: a.detector,
				perGroup: d.PerGroup,
			})
			a.finished(d.Name, scope, sr, time.Since(start))
			res.Scopes = append(res.Scopes, sr)
		}
		r.Dimensions = append(r.Dimensions, res)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scorer, err := a.scorer(c)
	if err != nil {
		return nil, err
	}
	for _, scope := range aggregate.Scopes {
		r.Readability = append(r.Readability, ReadabilityResult{Scope: scope, Groups: scorer.ScoreScope(c, scope, a.opts.Workers)})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Scalars = a.scalarAnomalies(c)
	r.Semantic = SemanticDistribution(c)
	r.Sentences = SentenceLengthDistributions(c)
	r.Correlation = LengthGematriaCorrelation(c)

	for _, sub := range a.opts.Subsets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Comparison = append(r.Comparison, a.compare(c, sub, scorer))
	}
	return r, nil
}

func (a *Analyzer) finished(name string, scope aggregate.Scope, sr ScopeResult, d time.Duration) {
	if a.opts.OnDimension == nil {
		return
	}
	keys := 0
	for _, g := range sr.Groups {
		keys += g.Summary.Unique
	}
	a.opts.OnDimension(DimensionStat{Name: name, Scope: scope, Groups: len(sr.Groups), Keys: keys, Duration: d.Seconds()})
}

// scorer builds the readability scorer, deriving the frequent-word set from
// corpus word frequency unless common words were configured.
func (a *Analyzer) scorer(c *corpus.Corpus) (*readability.Scorer, error) {
	common := a.opts.CommonWords
	if len(common) == 0 {
		words := aggregate.Merged(aggregate.Run(
			aggregate.Groups(c, aggregate.ScopeCorpus, aggregate.Words),
			aggregate.Unigram[string, string](aggregate.Identity[string]), a.opts.Workers))
		common = readability.FrequentWords(words, a.opts.FrequentWordsTopK)
	}
	return readability.NewScorer(a.opts.PolysyllableThreshold, common)
}
