// Package gematria computes abjad numeric values of Arabic tokens and phrases.
//
// The table assigns the traditional abjad values to the 28 base letters.
// Input is expected in normalized form (see package arabic), where hamza
// carriers, alef maqsura and taa marbuta have already been folded onto base
// letters. Any rune absent from the table contributes zero.
package gematria

import (
	"github.com/FocuswithJustin/versestats/core/arabic"
)

// abjad is the letter to value table. Read-only after package initialization.
var abjad = map[rune]int{
	'ا': 1, 'ب': 2, 'ج': 3, 'د': 4, 'ه': 5, 'و': 6, 'ز': 7, 'ح': 8, 'ط': 9,
	'ي': 10, 'ك': 20, 'ل': 30, 'م': 40, 'ن': 50, 'س': 60, 'ع': 70, 'ف': 80, 'ص': 90,
	'ق': 100, 'ر': 200, 'ش': 300, 'ت': 400, 'ث': 500, 'خ': 600, 'ذ': 700, 'ض': 800, 'ظ': 900,
	'غ': 1000,
}

// Letter returns the value of a single letter and whether it is in the table.
func Letter(r rune) (int, bool) {
	v, ok := abjad[r]
	return v, ok
}

// Value returns the sum of the letter values of a normalized token.
func Value(token string) int {
	total := 0
	for _, r := range token {
		total += abjad[r]
	}
	return total
}

// PhraseValue returns the sum of Value over tokens.
func PhraseValue(tokens []string) int {
	total := 0
	for _, tok := range tokens {
		total += Value(tok)
	}
	return total
}

// TextValue normalizes and tokenizes raw text, then returns its phrase value.
func TextValue(raw string) int {
	return PhraseValue(arabic.Tokenize(arabic.Normalize(raw)))
}

// Unmapped returns the runes of token that have no table entry, in order.
// Callers use it to surface characters that silently contribute zero.
func Unmapped(token string) []rune {
	var out []rune
	for _, r := range token {
		if _, ok := abjad[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Table returns a copy of the letter table.
func Table() map[rune]int {
	out := make(map[rune]int, len(abjad))
	for k, v := range abjad {
		out[k] = v
	}
	return out
}
