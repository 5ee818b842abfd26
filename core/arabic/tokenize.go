package arabic

import (
	"strings"
	"unicode"
)

// isBoundary reports whether r separates tokens: whitespace, punctuation
// (including the Arabic comma, semicolon and question mark) and symbols such
// as the Quranic section and prostration signs.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Tokenize splits normalized text into word tokens, preserving order.
// Empty tokens are never produced.
func Tokenize(normalized string) []string {
	return strings.FieldsFunc(normalized, isBoundary)
}

// Letters returns the letters of a token in order, dropping digits and any
// other non-letter runes.
func Letters(token string) []rune {
	out := make([]rune, 0, len(token)/2)
	for _, r := range token {
		if unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

// LetterCount returns the number of letters in a token.
func LetterCount(token string) int {
	n := 0
	for _, r := range token {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
