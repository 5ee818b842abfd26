package aggregate

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// Extractor turns the items of one segment into zero or more keys.
// Implementations must emit keys in a deterministic order.
type Extractor[T any, K comparable] interface {
	Extract(items []T, emit func(K))
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc[T any, K comparable] func(items []T, emit func(K))

func (f ExtractorFunc[T, K]) Extract(items []T, emit func(K)) { f(items, emit) }

// KeyFunc maps one item to its key. ok is false for items that contribute
// no key.
type KeyFunc[T any, K comparable] func(item T) (key K, ok bool)

// Identity is the KeyFunc of items that are their own key.
func Identity[K comparable](item K) (K, bool) { return item, true }

// Unigram emits one key per item.
func Unigram[T any, K comparable](key KeyFunc[T, K]) Extractor[T, K] {
	return ExtractorFunc[T, K](func(items []T, emit func(K)) {
		for _, it := range items {
			if k, ok := key(it); ok {
				emit(k)
			}
		}
	})
}

type ngrams[T any] struct {
	n   int
	key func(T) string
	sep string
}

// NewNGrams returns an extractor emitting each run of n consecutive item
// keys, joined with sep. Runs that would pass the end of the segment are
// dropped. n must be at least 2.
func NewNGrams[T any](n int, key func(T) string, sep string) (Extractor[T, string], error) {
	if n < 2 {
		return nil, errors.NewValidation("ngram.size", strconv.Itoa(n), "must be at least 2")
	}
	return &ngrams[T]{n: n, key: key, sep: sep}, nil
}

func (g *ngrams[T]) Extract(items []T, emit func(string)) {
	if len(items) < g.n {
		return
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = g.key(it)
	}
	for i := 0; i+g.n <= len(keys); i++ {
		emit(strings.Join(keys[i:i+g.n], g.sep))
	}
}

// Pair is an unordered pair stored with A < B.
type Pair[K cmp.Ordered] struct {
	A K `json:"a"`
	B K `json:"b"`
}

// MakePair returns the canonical pair of a and b.
func MakePair[K cmp.Ordered](a, b K) Pair[K] {
	if b < a {
		a, b = b, a
	}
	return Pair[K]{A: a, B: b}
}

// CoOccurrence emits every unordered pair of distinct keys present in the
// segment, each once. Pairs are emitted in first-appearance order.
func CoOccurrence[T any, K cmp.Ordered](key KeyFunc[T, K]) Extractor[T, Pair[K]] {
	return ExtractorFunc[T, Pair[K]](func(items []T, emit func(Pair[K])) {
		seen := make(map[K]bool, len(items))
		distinct := make([]K, 0, len(items))
		for _, it := range items {
			k, ok := key(it)
			if !ok || seen[k] {
				continue
			}
			seen[k] = true
			distinct = append(distinct, k)
		}
		for i := 0; i < len(distinct); i++ {
			for j := i + 1; j < len(distinct); j++ {
				emit(MakePair(distinct[i], distinct[j]))
			}
		}
	})
}

type collocations[T any, K cmp.Ordered] struct {
	window int
	key    KeyFunc[T, K]
}

// NewCollocations returns an extractor emitting an unordered pair for every
// two items whose positions lie within a window of w tokens, that is at
// distance 1 to w-1. Each position pair counts once; pairs of equal keys are
// skipped. window must be at least 1.
func NewCollocations[T any, K cmp.Ordered](window int, key KeyFunc[T, K]) (Extractor[T, Pair[K]], error) {
	if window < 1 {
		return nil, errors.NewValidation("collocation.window", strconv.Itoa(window), "must be at least 1")
	}
	return &collocations[T, K]{window: window, key: key}, nil
}

func (c *collocations[T, K]) Extract(items []T, emit func(Pair[K])) {
	type slot struct {
		key K
		ok  bool
	}
	slots := make([]slot, len(items))
	for i, it := range items {
		k, ok := c.key(it)
		slots[i] = slot{k, ok}
	}
	for i := range slots {
		if !slots[i].ok {
			continue
		}
		for j := i + 1; j < len(slots) && j-i <= c.window-1; j++ {
			if !slots[j].ok || slots[j].key == slots[i].key {
				continue
			}
			emit(MakePair(slots[i].key, slots[j].key))
		}
	}
}

// First emits the key of the first item of the segment that has one.
func First[T any, K comparable](key KeyFunc[T, K]) Extractor[T, K] {
	return ExtractorFunc[T, K](func(items []T, emit func(K)) {
		for _, it := range items {
			if k, ok := key(it); ok {
				emit(k)
				return
			}
		}
	})
}

// Last emits the key of the last item of the segment that has one.
func Last[T any, K comparable](key KeyFunc[T, K]) Extractor[T, K] {
	return ExtractorFunc[T, K](func(items []T, emit func(K)) {
		for i := len(items) - 1; i >= 0; i-- {
			if k, ok := key(items[i]); ok {
				emit(k)
				return
			}
		}
	})
}
