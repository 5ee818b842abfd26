// Package search finds verses and tokens by word, phrase, position and
// numeric value.
//
// Queries are normalized and tokenized the same way corpus text is, so a
// diacritized query matches undiacritized text. Results are in corpus order.
package search

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/gematria"
)

// Hit is one match. Position is the 1-based index of the first matched
// token, or 0 for verse-level matches.
type Hit struct {
	Ref      corpus.Ref `json:"ref"`
	Position int        `json:"position,omitempty"`
	Text     string     `json:"text,omitempty"`
}

func query(q string) []string {
	return arabic.Tokenize(arabic.Normalize(q))
}

func matchAt(v *corpus.Verse, words []string, i int) bool {
	if i+len(words) > len(v.Tokens) {
		return false
	}
	for j, w := range words {
		if v.Tokens[i+j].Surface != w {
			return false
		}
	}
	return true
}

func scan(c *corpus.Corpus, words []string, keep func(*corpus.Verse) bool) []Hit {
	hits := []Hit{}
	if len(words) == 0 {
		return hits
	}
	text := strings.Join(words, " ")
	verses := c.Verses()
	for vi := range verses {
		v := &verses[vi]
		if keep != nil && !keep(v) {
			continue
		}
		for i := range v.Tokens {
			if matchAt(v, words, i) {
				hits = append(hits, Hit{Ref: v.Ref(), Position: i + 1, Text: text})
			}
		}
	}
	return hits
}

// Word returns every occurrence of a single word. A query that tokenizes to
// more than one word is searched as a phrase.
func Word(c *corpus.Corpus, word string) []Hit {
	return scan(c, query(word), nil)
}

// Phrase returns every occurrence of a contiguous token sequence.
func Phrase(c *corpus.Corpus, phrase string) []Hit {
	return scan(c, query(phrase), nil)
}

// Count returns the number of occurrences of a word or phrase.
func Count(c *corpus.Corpus, phrase string) int {
	return len(Phrase(c, phrase))
}

// InChapter returns the occurrences of a word or phrase in one chapter.
func InChapter(c *corpus.Corpus, phrase string, chapter int) []Hit {
	return scan(c, query(phrase), func(v *corpus.Verse) bool { return v.Chapter == chapter })
}

// InRange returns the occurrences of a word or phrase inside r.
func InRange(c *corpus.Corpus, phrase string, r corpus.Range) []Hit {
	return scan(c, query(phrase), func(v *corpus.Verse) bool { return r.Contains(v.Ref()) })
}

// AtPosition returns the occurrences that start at the 1-based token
// position pos.
func AtPosition(c *corpus.Corpus, phrase string, pos int) ([]Hit, error) {
	if pos < 1 {
		return nil, errors.NewValidation("position", strconv.Itoa(pos), "must be at least 1")
	}
	hits := []Hit{}
	for _, h := range Phrase(c, phrase) {
		if h.Position == pos {
			hits = append(hits, h)
		}
	}
	return hits, nil
}

func verses(c *corpus.Corpus, keep func(*corpus.Verse) bool) []Hit {
	hits := []Hit{}
	vs := c.Verses()
	for i := range vs {
		if keep(&vs[i]) {
			hits = append(hits, Hit{Ref: vs[i].Ref()})
		}
	}
	return hits
}

// WordCount returns the verses with exactly n tokens.
func WordCount(c *corpus.Corpus, n int) []Hit {
	return verses(c, func(v *corpus.Verse) bool { return len(v.Tokens) == n })
}

// WordCountMultiple returns the verses whose token count is a multiple of n.
// Empty verses are never matched.
func WordCountMultiple(c *corpus.Corpus, n int) ([]Hit, error) {
	if n < 1 {
		return nil, errors.NewValidation("multiple", strconv.Itoa(n), "must be at least 1")
	}
	return verses(c, func(v *corpus.Verse) bool {
		return len(v.Tokens) > 0 && len(v.Tokens)%n == 0
	}), nil
}

// TokensWithValue returns every token whose gematria value is value.
func TokensWithValue(c *corpus.Corpus, value int) []Hit {
	hits := []Hit{}
	vs := c.Verses()
	for vi := range vs {
		v := &vs[vi]
		for i, tok := range v.Tokens {
			if tok.Gematria == value {
				hits = append(hits, Hit{Ref: v.Ref(), Position: i + 1, Text: tok.Surface})
			}
		}
	}
	return hits
}

// VersesWithValue returns the verses whose total gematria value is value.
func VersesWithValue(c *corpus.Corpus, value int) []Hit {
	return verses(c, func(v *corpus.Verse) bool { return v.Gematria() == value })
}

// Attribute is a numeric property of a verse.
type Attribute string

const (
	AttrWordCount    Attribute = "word-count"
	AttrVerseIndex   Attribute = "verse-index"
	AttrChapterIndex Attribute = "chapter-index"
)

func (a Attribute) of(v *corpus.Verse) (int, error) {
	switch a {
	case AttrWordCount:
		return len(v.Tokens), nil
	case AttrVerseIndex:
		return v.Index, nil
	case AttrChapterIndex:
		return v.Chapter, nil
	}
	return 0, errors.NewValidation("attribute", string(a), "must be word-count, verse-index or chapter-index")
}

// ValueMatches returns the verses that contain phrase and whose attr equals
// the gematria value of phrase.
func ValueMatches(c *corpus.Corpus, phrase string, attr Attribute) ([]Hit, error) {
	if _, err := attr.of(&corpus.Verse{}); err != nil {
		return nil, err
	}
	words := query(phrase)
	value := gematria.PhraseValue(words)
	hits := []Hit{}
	seen := make(map[corpus.Ref]bool)
	for _, h := range scan(c, words, nil) {
		if seen[h.Ref] {
			continue
		}
		seen[h.Ref] = true
		v, _ := c.Verse(h.Ref)
		if n, _ := attr.of(v); n == value {
			hits = append(hits, h)
		}
	}
	return hits, nil
}
