// Package corpus holds the immutable verse model the analysis core runs over.
//
// A Corpus is built once from loader output and never mutated. Verses keep
// source order, which is ascending by chapter then verse; chapter groupings
// are subslices of the verse slice and share its storage.
package corpus

import (
	"fmt"

	"github.com/FocuswithJustin/versestats/core/morph"
)

// Ref addresses one verse by its 1-based chapter and verse indices.
type Ref struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// String returns the reference as "chapter:verse".
func (r Ref) String() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

// Compare orders refs by chapter then verse.
func (r Ref) Compare(o Ref) int {
	if r.Chapter != o.Chapter {
		return cmpInt(r.Chapter, o.Chapter)
	}
	return cmpInt(r.Verse, o.Verse)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Token is one word of a verse with its derived attributes.
type Token struct {
	Surface  string       `json:"surface"`
	Lemma    morph.Result `json:"lemma"`
	Root     morph.Result `json:"root"`
	Gematria int          `json:"gematria"`
}

// Verse is a single line of the corpus.
type Verse struct {
	Chapter    int     `json:"chapter"`
	Index      int     `json:"verse"`
	Raw        string  `json:"raw"`
	Normalized string  `json:"normalized"`
	Tokens     []Token `json:"tokens"`
}

// Ref returns the verse address.
func (v *Verse) Ref() Ref {
	return Ref{Chapter: v.Chapter, Verse: v.Index}
}

// Surfaces returns the token surfaces in order.
func (v *Verse) Surfaces() []string {
	out := make([]string, len(v.Tokens))
	for i := range v.Tokens {
		out[i] = v.Tokens[i].Surface
	}
	return out
}

// Gematria returns the sum of the token values of the verse.
func (v *Verse) Gematria() int {
	total := 0
	for i := range v.Tokens {
		total += v.Tokens[i].Gematria
	}
	return total
}

// Chapter is a contiguous run of verses sharing a chapter index.
type Chapter struct {
	Index  int
	Verses []Verse
	// Offset is the position of the first verse in the corpus.
	Offset int
}

// MorphStats counts tokens the morphology capability could not resolve.
type MorphStats struct {
	Tokens          int `json:"tokens"`
	LemmaUnresolved int `json:"lemma_unresolved"`
	RootUnresolved  int `json:"root_unresolved"`
}

// Corpus is an ordered, immutable collection of verses.
type Corpus struct {
	verses   []Verse
	chapters []Chapter
	byRef    map[Ref]int
	morph    MorphStats
}

// New wraps verses, which must already be unique and in ascending order.
// The slice is owned by the corpus afterwards.
func New(verses []Verse) *Corpus {
	c := &Corpus{
		verses: verses,
		byRef:  make(map[Ref]int, len(verses)),
	}
	for i := range verses {
		v := &verses[i]
		c.byRef[v.Ref()] = i
		if n := len(c.chapters); n == 0 || c.chapters[n-1].Index != v.Chapter {
			c.chapters = append(c.chapters, Chapter{Index: v.Chapter, Offset: i})
		}
		for _, tok := range v.Tokens {
			c.morph.Tokens++
			if !tok.Lemma.Resolved {
				c.morph.LemmaUnresolved++
			}
			if !tok.Root.Resolved {
				c.morph.RootUnresolved++
			}
		}
	}
	for i := range c.chapters {
		end := len(verses)
		if i+1 < len(c.chapters) {
			end = c.chapters[i+1].Offset
		}
		c.chapters[i].Verses = verses[c.chapters[i].Offset:end]
	}
	return c
}

// Len returns the number of verses.
func (c *Corpus) Len() int { return len(c.verses) }

// Verses returns all verses in corpus order. Callers must not modify them.
func (c *Corpus) Verses() []Verse { return c.verses }

// Chapters returns the chapter groupings ordered by chapter index.
func (c *Corpus) Chapters() []Chapter { return c.chapters }

// Verse looks up a verse by reference.
func (c *Corpus) Verse(ref Ref) (*Verse, bool) {
	i, ok := c.byRef[ref]
	if !ok {
		return nil, false
	}
	return &c.verses[i], true
}

// Ordinal returns the corpus position of the verse at ref, or -1.
func (c *Corpus) Ordinal(ref Ref) int {
	if i, ok := c.byRef[ref]; ok {
		return i
	}
	return -1
}

// TokenCount returns the number of tokens in the corpus.
func (c *Corpus) TokenCount() int { return c.morph.Tokens }

// MorphStats returns the unresolved morphology counters.
func (c *Corpus) MorphStats() MorphStats { return c.morph }

// Subset returns a corpus of the chapters accepted by keep, in corpus order.
// Token data is shared with c.
func (c *Corpus) Subset(keep func(chapter int) bool) *Corpus {
	var out []Verse
	for _, ch := range c.chapters {
		if keep(ch.Index) {
			out = append(out, ch.Verses...)
		}
	}
	return New(out)
}

// ChapterIndices returns the chapter indices in ascending order.
func (c *Corpus) ChapterIndices() []int {
	out := make([]int, len(c.chapters))
	for i, ch := range c.chapters {
		out[i] = ch.Index
	}
	return out
}
