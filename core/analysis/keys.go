package analysis

import (
	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/corpus"
)

const (
	// UnresolvedPrefix marks root and lemma keys of tokens the morphology
	// capability could not resolve. Each such key carries the surface, so an
	// unresolved token forms its own group.
	UnresolvedPrefix = "?"

	// Unclassified is the semantic group of every token without a root.
	Unclassified = "<unclassified>"
)

type tok = *corpus.Token

func wordKey(t tok) (string, bool) { return t.Surface, true }

func rootKey(t tok) (string, bool) {
	if t.Root.Resolved {
		return t.Root.Value, true
	}
	return UnresolvedPrefix + t.Surface, true
}

func lemmaKey(t tok) (string, bool) {
	if t.Lemma.Resolved {
		return t.Lemma.Value, true
	}
	return UnresolvedPrefix + t.Surface, true
}

func semanticKey(t tok) (string, bool) {
	if t.Root.Resolved {
		return t.Root.Value, true
	}
	return Unclassified, true
}

func gematriaKey(t tok) (int, bool) { return t.Gematria, true }

func charKey(r rune) (string, bool) { return string(r), true }

func str(s string) string { return s }

func runeStr(r rune) string { return string(r) }

func pairStr(p aggregate.Pair[string]) string { return p.A + "|" + p.B }

func surface(t tok) string { return t.Surface }
