// Package aggregate is the counting engine behind every analysis dimension.
//
// An aggregation takes a granularity scope, the item stream of each group in
// that scope, and an Extractor that turns the items of one verse into keys.
// It yields one Table per group. Word, character, root and numeric frequency,
// n-grams, co-occurrence and collocation pairs, and positional extremes are
// all Extractors over the same engine.
//
// Items are grouped into Segments, one per verse. Extractors never see two
// verses at once, so windows and pairs cannot cross verse boundaries.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
)

// Scope is the granularity an aggregation runs at.
type Scope int

const (
	ScopeCorpus Scope = iota
	ScopeChapter
	ScopeVerse
)

// Scopes lists every scope in report order.
var Scopes = []Scope{ScopeCorpus, ScopeChapter, ScopeVerse}

func (s Scope) String() string {
	switch s {
	case ScopeCorpus:
		return "corpus"
	case ScopeChapter:
		return "chapter"
	case ScopeVerse:
		return "verse"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScope parses a scope name.
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "corpus":
		return ScopeCorpus, nil
	case "chapter":
		return ScopeChapter, nil
	case "verse":
		return ScopeVerse, nil
	}
	return 0, errors.NewValidation("scope", name, "must be corpus, chapter or verse")
}

// GroupID identifies one group. The corpus group is the zero value; a
// chapter group has Verse 0.
type GroupID struct {
	Chapter int `json:"chapter,omitempty"`
	Verse   int `json:"verse,omitempty"`
}

func (g GroupID) String() string {
	switch {
	case g.Chapter == 0:
		return "corpus"
	case g.Verse == 0:
		return fmt.Sprintf("%d", g.Chapter)
	default:
		return corpus.Ref{Chapter: g.Chapter, Verse: g.Verse}.String()
	}
}
