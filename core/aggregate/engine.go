package aggregate

import (
	"runtime"
)

// Result is the table of one group.
type Result[K comparable] struct {
	Group GroupID
	Table *Table[K]
	// Items is the number of items fed to the extractor.
	Items int
}

// Aggregate runs ex over every group sequentially.
func Aggregate[T any, K comparable](groups []Group[T], ex Extractor[T, K]) []Result[K] {
	out := make([]Result[K], len(groups))
	for i, g := range groups {
		out[i] = Result[K]{Group: g.ID, Table: count(g.Segments, ex), Items: g.Items()}
	}
	return out
}

func count[T any, K comparable](segments []Segment[T], ex Extractor[T, K]) *Table[K] {
	t := NewTable[K]()
	for _, s := range segments {
		seq := 0
		ex.Extract(s.Items, func(k K) {
			t.Add(k, Position{Verse: s.Ordinal, Seq: seq})
			seq++
		})
	}
	return t
}

type chunk struct {
	group      int
	start, end int
}

// Run aggregates groups with up to workers goroutines; workers <= 0 uses
// GOMAXPROCS and 1 runs sequentially. Groups with many segments are split
// into chunks whose partial tables are merged afterwards, so the output is
// identical to Aggregate. Extractors must be safe for concurrent use.
func Run[T any, K comparable](groups []Group[T], ex Extractor[T, K], workers int) []Result[K] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(groups) == 0 {
		return Aggregate(groups, ex)
	}

	perGroup := 1
	if len(groups) < workers {
		perGroup = (workers + len(groups) - 1) / len(groups)
	}

	var jobs []chunk
	for gi, g := range groups {
		n := len(g.Segments)
		size := (n + perGroup - 1) / perGroup
		if size == 0 {
			jobs = append(jobs, chunk{group: gi})
			continue
		}
		for start := 0; start < n; start += size {
			jobs = append(jobs, chunk{group: gi, start: start, end: min(start+size, n)})
		}
	}

	tables := make([]*Table[K], len(jobs))
	parallel(workers, len(jobs), func(j int) {
		c := jobs[j]
		tables[j] = count(groups[c.group].Segments[c.start:c.end], ex)
	})

	out := make([]Result[K], len(groups))
	for i, g := range groups {
		out[i] = Result[K]{Group: g.ID, Table: NewTable[K](), Items: g.Items()}
	}
	for j, c := range jobs {
		out[c.group].Table.Merge(tables[j])
	}
	return out
}

// Merged sums the tables of results into one table.
func Merged[K comparable](results []Result[K]) *Table[K] {
	t := NewTable[K]()
	for _, r := range results {
		t.Merge(r.Table)
	}
	return t
}
