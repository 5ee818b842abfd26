package aggregate

import (
	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/corpus"
)

// Segment is the item stream of one verse.
type Segment[T any] struct {
	// Ordinal is the verse position in the corpus. It anchors first-seen
	// order independently of how work is split or merged.
	Ordinal int
	Items   []T
}

// Group is the ordered segments belonging to one group of a scope.
type Group[T any] struct {
	ID       GroupID
	Segments []Segment[T]
}

// Items returns the number of items across all segments.
func (g Group[T]) Items() int {
	n := 0
	for _, s := range g.Segments {
		n += len(s.Items)
	}
	return n
}

// Groups builds the grouped item streams of c at scope, projecting each verse
// to its items with project. The corpus scope always yields exactly one group,
// even for an empty corpus; the other scopes yield one group per chapter or
// verse in corpus order.
func Groups[T any](c *corpus.Corpus, scope Scope, project func(*corpus.Verse) []T) []Group[T] {
	verses := c.Verses()
	segment := func(i int) Segment[T] {
		return Segment[T]{Ordinal: i, Items: project(&verses[i])}
	}

	switch scope {
	case ScopeChapter:
		chapters := c.Chapters()
		out := make([]Group[T], len(chapters))
		for i, ch := range chapters {
			g := Group[T]{ID: GroupID{Chapter: ch.Index}, Segments: make([]Segment[T], len(ch.Verses))}
			for j := range ch.Verses {
				g.Segments[j] = segment(ch.Offset + j)
			}
			out[i] = g
		}
		return out

	case ScopeVerse:
		out := make([]Group[T], len(verses))
		for i := range verses {
			out[i] = Group[T]{
				ID:       GroupID{Chapter: verses[i].Chapter, Verse: verses[i].Index},
				Segments: []Segment[T]{segment(i)},
			}
		}
		return out

	default:
		g := Group[T]{Segments: make([]Segment[T], len(verses))}
		for i := range verses {
			g.Segments[i] = segment(i)
		}
		return []Group[T]{g}
	}
}

// Tokens projects a verse to pointers into its token slice.
func Tokens(v *corpus.Verse) []*corpus.Token {
	out := make([]*corpus.Token, len(v.Tokens))
	for i := range v.Tokens {
		out[i] = &v.Tokens[i]
	}
	return out
}

// Words projects a verse to its token surfaces.
func Words(v *corpus.Verse) []string {
	return v.Surfaces()
}

// Letters projects a verse to the letters of its tokens, concatenated in
// order without word separators.
func Letters(v *corpus.Verse) []rune {
	var out []rune
	for i := range v.Tokens {
		out = append(out, arabic.Letters(v.Tokens[i].Surface)...)
	}
	return out
}
