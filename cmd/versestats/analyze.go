package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/analysis"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/morph"
	"github.com/FocuswithJustin/versestats/core/stats"
	"github.com/FocuswithJustin/versestats/internal/archive"
	"github.com/FocuswithJustin/versestats/internal/config"
	"github.com/FocuswithJustin/versestats/internal/logging"
	"github.com/FocuswithJustin/versestats/internal/metrics"
	"github.com/FocuswithJustin/versestats/internal/store"
	"github.com/FocuswithJustin/versestats/internal/validation"
)

// AnalysisFlags override the run configuration. Zero values keep the
// configured setting.
type AnalysisFlags struct {
	Lexicon   string  `help:"XML morphology lexicon" type:"path"`
	TopK      int     `name:"top-k" help:"Entries kept per ranked table"`
	Window    int     `help:"Collocation window in tokens"`
	Threshold float64 `help:"Anomaly z-score threshold"`
	Workers   int     `help:"Aggregation workers (0 = one per CPU)" default:"-1"`
}

// setup loads the configuration, applies the flag overrides and validates
// the result before any corpus is read.
func (f *AnalysisFlags) setup(g *Globals) (*config.Config, analysis.Options, morph.Port, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, analysis.Options{}, nil, err
	}
	if f.Lexicon != "" {
		cfg.Morphology.Lexicon = f.Lexicon
	}
	if f.TopK != 0 {
		cfg.Ranking.TopK = f.TopK
	}
	if f.Window != 0 {
		cfg.Collocation.Window = f.Window
	}
	if f.Threshold != 0 {
		cfg.Anomaly.Threshold = f.Threshold
	}
	if f.Workers >= 0 {
		cfg.Workers = f.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, analysis.Options{}, nil, err
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, analysis.Options{}, nil, err
	}
	port, err := cfg.Port()
	if err != nil {
		return nil, analysis.Options{}, nil, err
	}
	return cfg, opts, port, nil
}

func loadCorpus(ctx context.Context, path string, port morph.Port) (*corpus.Corpus, error) {
	if err := validation.ValidatePath("corpus", path); err != nil {
		return nil, err
	}
	r, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	c, err := corpus.Load(r, port)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	m := c.MorphStats()
	logging.LoggerFromContext(ctx).Info("corpus loaded",
		"path", path, "compression", r.Compression.String(),
		"verses", c.Len(), "chapters", len(c.Chapters()), "tokens", m.Tokens)
	if port != nil {
		logging.Unresolved(ctx, "lemma", m.LemmaUnresolved, m.Tokens)
		logging.Unresolved(ctx, "root", m.RootUnresolved, m.Tokens)
	}
	return c, nil
}

// logDegenerate surfaces corpus-level statistics that could not be computed.
func logDegenerate(ctx context.Context, r *analysis.Report) {
	for _, rr := range r.Readability {
		if rr.Scope != aggregate.ScopeCorpus {
			continue
		}
		for _, g := range rr.Groups {
			if g.Status != stats.OK {
				logging.Degenerate(ctx, "readability", g.Group.String(), g.Status.String())
			}
		}
	}
	for _, sa := range r.Scalars {
		if sa.Outcome.Status != stats.OK {
			logging.Degenerate(ctx, "anomaly", sa.Name, sa.Outcome.Status.String())
		}
	}
	if r.Semantic.Fallback {
		logging.Degenerate(ctx, "semantic_complexity", "corpus", "tertile boundaries coincide")
	}
	if r.Correlation.Status != stats.OK {
		logging.Degenerate(ctx, "length_gematria_correlation", "corpus", r.Correlation.Status.String())
	}
}

// AnalyzeCmd analyzes a corpus.
type AnalyzeCmd struct {
	Corpus        string `arg:"" help:"Corpus file (plain, .gz or .xz; - for stdin)"`
	AnalysisFlags `embed:""`
	JSON          string `name:"json" help:"Write the full report as JSON (.gz and .xz are compressed)" type:"path"`
	DB            string `name:"db" help:"Store the run in this SQLite database" type:"path"`
	MetricsFile   string `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
}

func (c *AnalyzeCmd) Run(g *Globals, e *env) error {
	if err := validation.ValidateOutputs(c.Corpus,
		validation.Output{Field: "json", Path: c.JSON},
		validation.Output{Field: "db", Path: c.DB},
		validation.Output{Field: "metrics-file", Path: c.MetricsFile},
	); err != nil {
		return err
	}
	cfg, opts, port, err := c.setup(g)
	if err != nil {
		return err
	}

	start := time.Now()
	runID := store.NewRunID()
	ctx := logging.WithRunID(e.ctx, runID)

	crp, err := loadCorpus(ctx, c.Corpus, port)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if c.MetricsFile != "" {
		m = metrics.New()
	}
	opts.OnDimension = func(s analysis.DimensionStat) {
		logging.Dimension(ctx, s.Name, s.Scope.String(), s.Groups, s.Keys, time.Duration(s.Duration*float64(time.Second)))
		if m != nil {
			m.ObserveDimension(s)
		}
	}

	a, err := analysis.New(opts)
	if err != nil {
		return err
	}
	report, err := a.Run(ctx, crp)
	if err != nil {
		return err
	}
	finished := time.Now()
	logDegenerate(ctx, report)

	if c.JSON != "" {
		if err := writeReport(c.JSON, report); err != nil {
			return err
		}
	}
	if c.DB != "" {
		if err := saveRun(ctx, c.DB, store.Run{
			ID:         runID,
			StartedAt:  start,
			FinishedAt: finished,
			CorpusPath: c.Corpus,
		}, cfg, report); err != nil {
			return err
		}
	}
	if m != nil {
		m.ObserveReport(report, finished.Sub(start), finished)
		if err := m.WriteFile(c.MetricsFile); err != nil {
			return err
		}
	}

	logging.InfoContext(ctx, "analysis complete",
		"dimensions", len(report.Dimensions), "duration_ms", finished.Sub(start).Milliseconds())
	return printSummary(e.out, runID, report, cfg.Ranking.TopK)
}

func writeReport(path string, r *analysis.Report) error {
	w, err := archive.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		w.Close()
		return errors.NewIO("write report", path, err)
	}
	if err := w.Close(); err != nil {
		return errors.NewIO("write report", path, err)
	}
	return nil
}

func saveRun(ctx context.Context, path string, run store.Run, cfg *config.Config, r *analysis.Report) error {
	opts, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode options")
	}
	run.Options = string(opts)

	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()
	if _, err := s.Save(ctx, run, r); err != nil {
		return err
	}
	logging.InfoContext(ctx, "run stored", "db", path)
	return nil
}

// summaryDimensions are printed by printSummary, in order.
var summaryDimensions = []string{"word", "root", "gematria", "word-ngram-2", "word-collocation"}

func printSummary(w io.Writer, runID string, r *analysis.Report, topK int) error {
	p := &printer{w: w}
	info := r.Corpus
	p.printf("Run:         %s\n", runID)
	p.printf("Corpus:      %s verses, %s chapters, %s tokens\n",
		humanize.Comma(int64(info.Verses)), humanize.Comma(int64(info.Chapters)), humanize.Comma(int64(info.Tokens)))
	p.printf("Fingerprint: %s\n", info.Fingerprint)
	if m := info.Morphology; m.Tokens > 0 {
		p.printf("Morphology:  %s/%s lemmas, %s/%s roots unresolved\n",
			humanize.Comma(int64(m.LemmaUnresolved)), humanize.Comma(int64(m.Tokens)),
			humanize.Comma(int64(m.RootUnresolved)), humanize.Comma(int64(m.Tokens)))
	}

	shown := min(topK, 5)
	for _, name := range summaryDimensions {
		d, ok := r.Dimension(name)
		if !ok {
			continue
		}
		sr, _ := d.Scope(aggregate.ScopeCorpus)
		g := sr.Groups[0]
		p.printf("\n%s (%s keys, %s items)\n", name, humanize.Comma(int64(g.Summary.Unique)), humanize.Comma(int64(g.Items)))
		for i, e := range g.Summary.Top {
			if i == shown {
				break
			}
			p.printf("  %2d. %-24s %s\n", i+1, e.Key, humanize.Comma(int64(e.Count)))
		}
		if sr.Anomaly != nil && len(sr.Anomaly.Flags) > 0 {
			p.printf("      %d anomalous keys (|z| > %.2f)\n", len(sr.Anomaly.Flags), sr.Anomaly.Threshold)
		}
	}

	p.printf("\nAnomalies\n")
	for _, sa := range r.Scalars {
		p.printf("  %-24s %-8s %s", sa.Name, sa.Scope, sa.Outcome.Status)
		if n := len(sa.Outcome.Flags); n > 0 {
			p.printf(", %d flagged (first %s, z=%.2f)", n, sa.Outcome.Flags[0].Key, sa.Outcome.Flags[0].Z)
		}
		p.printf("\n")
	}

	for _, rr := range r.Readability {
		if rr.Scope != aggregate.ScopeCorpus {
			continue
		}
		s := rr.Groups[0].Scores
		p.printf("\nReadability (%s)\n", s.Status)
		if s.Status == stats.OK {
			p.printf("  ease %.2f  grade %.2f  dale-chall %.2f  smog %.2f\n", s.Ease, s.Grade, s.DaleChall, s.SMOG)
			p.printf("  %.2f tokens per verse, %.2f letters per token\n", s.AvgSentenceLength, s.AvgWordLength)
		}
	}

	sem := r.Semantic
	p.printf("\nSemantic complexity")
	if sem.Fallback {
		p.printf(" (fallback: all verses medium)")
	} else {
		p.printf(" (boundaries %.2f, %.2f)", sem.LowMedium, sem.MediumHigh)
	}
	p.printf("\n")
	for _, t := range sem.Tiers {
		p.printf("  %-6s %6s verses  word length %.2f  sentence length %.2f\n",
			t.Name, humanize.Comma(int64(t.Verses)), t.WordLength.Mean, t.SentenceLength.Mean)
	}

	p.printf("\nLength/gematria correlation: %s", r.Correlation.Status)
	if r.Correlation.Status == stats.OK {
		p.printf(" r=%.4f", r.Correlation.Coefficient)
	}
	p.printf("\n")

	for _, sub := range r.Comparison {
		p.printf("\nSubset %s (chapters %s, %s verses)\n", sub.Name, sub.Chapters, humanize.Comma(int64(sub.Verses)))
		p.printf("  verse length mean %.2f, stddev %.2f\n", sub.VerseLengths.Mean, sub.VerseLengths.StdDev)
		if sub.Readability.Status == stats.OK {
			p.printf("  ease %.2f, grade %.2f\n", sub.Readability.Ease, sub.Readability.Grade)
		}
		for i, e := range sub.TopWords {
			if i == shown {
				break
			}
			p.printf("  %2d. %-24s %s\n", i+1, e.Key, humanize.Comma(int64(e.Count)))
		}
	}
	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// VerifyCmd runs the analysis twice and compares report fingerprints.
type VerifyCmd struct {
	Corpus        string `arg:"" help:"Corpus file (plain, .gz or .xz)"`
	AnalysisFlags `embed:""`
}

func (c *VerifyCmd) Run(g *Globals, e *env) error {
	_, opts, port, err := c.setup(g)
	if err != nil {
		return err
	}
	crp, err := loadCorpus(e.ctx, c.Corpus, port)
	if err != nil {
		return err
	}

	// The second pass runs sequentially so that parallel and sequential
	// aggregation are compared.
	var prints [2]string
	for i, workers := range []int{opts.Workers, 1} {
		opts.Workers = workers
		a, err := analysis.New(opts)
		if err != nil {
			return err
		}
		r, err := a.Run(e.ctx, crp)
		if err != nil {
			return err
		}
		if prints[i], err = r.Fingerprint(); err != nil {
			return errors.Wrap(err, "fingerprint report")
		}
	}

	if err := sameFingerprint(prints[0], prints[1]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "OK %s (corpus %s)\n", prints[0], crp.Fingerprint())
	return err
}

func sameFingerprint(parallel, sequential string) error {
	if parallel == sequential {
		return nil
	}
	return errors.Wrapf(errors.ErrNondeterministic, "parallel report %s, sequential report %s", parallel, sequential)
}
