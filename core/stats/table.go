package stats

import (
	"math"

	"github.com/FocuswithJustin/versestats/core/aggregate"
)

// TableSummary describes the count distribution of one table.
type TableSummary[K comparable] struct {
	Status   Status               `json:"status"`
	Total    int                  `json:"total"`
	Unique   int                  `json:"unique"`
	Mean     float64              `json:"mean"`
	Variance float64              `json:"variance"`
	StdDev   float64              `json:"std_dev"`
	Top      []aggregate.Entry[K] `json:"top"`
}

// SummarizeTable computes the summary of t with its top k entries.
// Mean and variance are over the per-key counts.
func SummarizeTable[K comparable](t *aggregate.Table[K], k int) TableSummary[K] {
	s := TableSummary[K]{
		Total:  t.Total(),
		Unique: t.Len(),
		Top:    t.TopK(k),
	}
	if s.Unique == 0 {
		s.Status = InsufficientData
		s.Top = []aggregate.Entry[K]{}
		return s
	}
	s.Mean = float64(s.Total) / float64(s.Unique)
	if s.Unique < 2 {
		s.Status = InsufficientData
		return s
	}
	s.Variance = variance(Floats(t.Counts()), s.Mean)
	s.StdDev = math.Sqrt(s.Variance)
	return s
}

// GroupSummary is the table summary of one group.
type GroupSummary[K comparable] struct {
	Group aggregate.GroupID `json:"group"`
	TableSummary[K]
}

// SummarizeResults summarizes every group of an aggregation, in group order.
func SummarizeResults[K comparable](results []aggregate.Result[K], k int) []GroupSummary[K] {
	out := make([]GroupSummary[K], len(results))
	for i, r := range results {
		out[i] = GroupSummary[K]{Group: r.Group, TableSummary: SummarizeTable(r.Table, k)}
	}
	return out
}
