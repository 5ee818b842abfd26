// Package metrics records batch analysis metrics in a Prometheus registry and
// writes them in the text exposition format for the node exporter textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/FocuswithJustin/versestats/core/analysis"
	"github.com/FocuswithJustin/versestats/core/errors"
)

const namespace = "versestats"

// Metrics contains the metrics of one analysis run.
type Metrics struct {
	registry *prometheus.Registry

	DimensionDuration *prometheus.HistogramVec
	DimensionGroups   *prometheus.GaugeVec
	DimensionKeys     *prometheus.GaugeVec
	CorpusVerses      prometheus.Gauge
	CorpusTokens      prometheus.Gauge
	Unresolved        *prometheus.GaugeVec
	AnomalyFlags      *prometheus.GaugeVec
	RunDuration       prometheus.Gauge
	LastRun           prometheus.Gauge
}

// New creates the metrics and registers them with a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		DimensionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dimension",
				Name:      "duration_seconds",
				Help:      "Aggregation time of one dimension at one scope",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"dimension", "scope"},
		),
		DimensionGroups: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "dimension",
				Name:      "groups",
				Help:      "Number of groups aggregated",
			},
			[]string{"dimension", "scope"},
		),
		DimensionKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "dimension",
				Name:      "keys",
				Help:      "Distinct keys summed over groups",
			},
			[]string{"dimension", "scope"},
		),
		CorpusVerses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "verses",
			Help:      "Verses in the analyzed corpus",
		}),
		CorpusTokens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "tokens",
			Help:      "Tokens in the analyzed corpus",
		}),
		Unresolved: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "morphology",
				Name:      "unresolved_tokens",
				Help:      "Tokens the morphology lexicon could not resolve",
			},
			[]string{"kind"},
		),
		AnomalyFlags: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "anomaly",
				Name:      "flags",
				Help:      "Flagged groups or keys per anomaly source",
			},
			[]string{"source"},
		),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Wall time of the analysis run",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "last_completion_timestamp_seconds",
			Help:      "Unix time the last run completed",
		}),
	}
	m.registry.MustRegister(
		m.DimensionDuration, m.DimensionGroups, m.DimensionKeys,
		m.CorpusVerses, m.CorpusTokens, m.Unresolved, m.AnomalyFlags,
		m.RunDuration, m.LastRun,
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDimension records one finished dimension. It matches
// analysis.Options.OnDimension.
func (m *Metrics) ObserveDimension(s analysis.DimensionStat) {
	scope := s.Scope.String()
	m.DimensionDuration.WithLabelValues(s.Name, scope).Observe(s.Duration)
	m.DimensionGroups.WithLabelValues(s.Name, scope).Set(float64(s.Groups))
	m.DimensionKeys.WithLabelValues(s.Name, scope).Set(float64(s.Keys))
}

// ObserveReport records corpus, morphology and anomaly totals of r.
func (m *Metrics) ObserveReport(r *analysis.Report, elapsed time.Duration, finished time.Time) {
	m.CorpusVerses.Set(float64(r.Corpus.Verses))
	m.CorpusTokens.Set(float64(r.Corpus.Tokens))
	m.Unresolved.WithLabelValues("lemma").Set(float64(r.Corpus.Morphology.LemmaUnresolved))
	m.Unresolved.WithLabelValues("root").Set(float64(r.Corpus.Morphology.RootUnresolved))
	for _, d := range r.Dimensions {
		n := 0
		for _, sr := range d.Scopes {
			if sr.Anomaly != nil {
				n += len(sr.Anomaly.Flags)
			}
			for _, g := range sr.Groups {
				if g.Anomaly != nil {
					n += len(g.Anomaly.Flags)
				}
			}
		}
		m.AnomalyFlags.WithLabelValues(d.Name).Set(float64(n))
	}
	for _, sa := range r.Scalars {
		m.AnomalyFlags.WithLabelValues(sa.Name).Set(float64(len(sa.Outcome.Flags)))
	}
	m.RunDuration.Set(elapsed.Seconds())
	m.LastRun.Set(float64(finished.Unix()))
}

// WriteFile writes every metric to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.NewIO("write metrics", path, err)
	}
	return nil
}
