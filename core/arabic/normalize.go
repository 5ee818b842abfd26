// Package arabic provides normalization and tokenization for Arabic verse text.
//
// Normalize runs four steps in a fixed order:
//
//  1. Strip combining marks (harakat, shadda, sukun, Quranic annotation signs)
//     together with the tatweel and the small waw/yeh used by Uthmani script.
//  2. Fold letter variants to one canonical letter (hamza-carrying alef forms,
//     alef wasla, alef maqsura, taa marbuta, Persian kaf/yeh).
//  3. Remove invisible formatting code points (zero-width joiners, BOM,
//     directional marks).
//  4. Collapse whitespace runs to a single space and trim the ends.
//
// Case folding is applied between steps 3 and 4; it has no effect on Arabic
// letters but keeps mixed-script input stable. Characters outside these tables
// pass through unchanged. Normalize is idempotent.
//
// All functions are safe for concurrent use by multiple goroutines.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters the normalizer produces in place of variant forms.
const (
	Alef         = 'ا'
	Waw          = 'و'
	Yeh          = 'ي'
	Heh          = 'ه'
	Kaf          = 'ك'
	AlefMaqsura  = 'ى'
	TaaMarbuta   = 'ة'
	AlefWasla    = 'ٱ'
	Tatweel      = 'ـ'
	smallWaw     = 'ۥ'
	smallYeh     = 'ۦ'
	persianKeheh = 'ک'
	farsiYeh     = 'ی'
)

// variants maps each foldable letter to its canonical form.
// Read-only after package initialization.
var variants = map[rune]rune{
	'أ':          Alef,
	'إ':          Alef,
	'آ':          Alef,
	'ٲ':          Alef,
	'ٳ':          Alef,
	AlefWasla:    Alef,
	AlefMaqsura:  Yeh,
	'ئ':          Yeh,
	farsiYeh:     Yeh,
	'ؤ':          Waw,
	TaaMarbuta:   Heh,
	persianKeheh: Kaf,
}

// decorations are spacing marks that carry no letter identity.
var decorations = map[rune]bool{
	Tatweel:  true,
	smallWaw: true,
	smallYeh: true,
}

func isDecoration(r rune) bool {
	return decorations[r]
}

func foldVariant(r rune) rune {
	if c, ok := variants[r]; ok {
		return c
	}
	return r
}

// newChain builds the transformer for steps 1-3 plus case folding.
// Transformers carry state, so each call gets its own chain.
func newChain() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(isDecoration)),
		norm.NFC,
		runes.Map(foldVariant),
		runes.Remove(runes.In(unicode.Cf)),
		cases.Fold(),
	)
}

// Normalize returns the canonical form of raw verse text.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	out, _, err := transform.String(newChain(), raw)
	if err != nil {
		// The chain only fails on invalid transformer state, never on input;
		// fall back to the untransformed text so the caller still gets step 4.
		out = raw
	}
	return collapseSpace(out)
}

// collapseSpace joins whitespace-separated fields with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripDiacritics removes combining marks and decorations only (step 1).
func StripDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(isDecoration)),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldLetter returns the canonical form of a single letter (step 2).
func FoldLetter(r rune) rune {
	return foldVariant(r)
}
