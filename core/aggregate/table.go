package aggregate

import (
	"sort"
)

// Position is where a key was first emitted: the verse ordinal, then the
// emission sequence within that verse.
type Position struct {
	Verse int `json:"verse"`
	Seq   int `json:"seq"`
}

// Before reports whether p precedes o in corpus order.
func (p Position) Before(o Position) bool {
	if p.Verse != o.Verse {
		return p.Verse < o.Verse
	}
	return p.Seq < o.Seq
}

// Entry is one ranked key of a Table.
type Entry[K comparable] struct {
	Key   K        `json:"key"`
	Count int      `json:"count"`
	First Position `json:"first"`
}

// Table counts keys and remembers where each was first seen.
// A Table is not safe for concurrent mutation.
type Table[K comparable] struct {
	counts map[K]int
	first  map[K]Position
	total  int
}

// NewTable returns an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{
		counts: make(map[K]int),
		first:  make(map[K]Position),
	}
}

// Add counts one occurrence of k at pos.
func (t *Table[K]) Add(k K, pos Position) {
	t.counts[k]++
	t.total++
	if f, ok := t.first[k]; !ok || pos.Before(f) {
		t.first[k] = pos
	}
}

// Merge adds the counts of o into t. The result is the same whatever order
// tables are merged in.
func (t *Table[K]) Merge(o *Table[K]) {
	for k, n := range o.counts {
		t.counts[k] += n
		if f, ok := t.first[k]; !ok || o.first[k].Before(f) {
			t.first[k] = o.first[k]
		}
	}
	t.total += o.total
}

// Count returns the count of k.
func (t *Table[K]) Count(k K) int { return t.counts[k] }

// Len returns the number of distinct keys.
func (t *Table[K]) Len() int { return len(t.counts) }

// Total returns the sum of all counts.
func (t *Table[K]) Total() int { return t.total }

// Ranked returns every entry ordered by descending count, then by first
// occurrence in corpus order.
func (t *Table[K]) Ranked() []Entry[K] {
	out := make([]Entry[K], 0, len(t.counts))
	for k, n := range t.counts {
		out = append(out, Entry[K]{Key: k, Count: n, First: t.first[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].First.Before(out[j].First)
	})
	return out
}

// TopK returns the first k ranked entries; k <= 0 returns all of them.
func (t *Table[K]) TopK(k int) []Entry[K] {
	ranked := t.Ranked()
	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// Counts returns the counts in ranked order.
func (t *Table[K]) Counts() []int {
	ranked := t.Ranked()
	out := make([]int, len(ranked))
	for i, e := range ranked {
		out[i] = e.Count
	}
	return out
}

// Clone returns an independent copy of t.
func (t *Table[K]) Clone() *Table[K] {
	c := NewTable[K]()
	c.Merge(t)
	return c
}
