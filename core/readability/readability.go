// Package readability scores verse text with classic readability formulas.
//
// The formulas assume an orthography with syllables; for Arabic they run on
// labeled proxies:
//
//   - a sentence is a verse
//   - syllables per word are approximated by letters per word
//   - a polysyllable is a token longer than a letter threshold
//   - a difficult word is a token outside a reference frequent-word set
//
// Scoring functions are pure over a Profile, which is itself composed from
// aggregation tables.
package readability

import (
	"math"

	"github.com/FocuswithJustin/versestats/core/stats"
)

// Profile holds the counts every formula is computed from.
type Profile struct {
	Sentences     int `json:"sentences"`
	Words         int `json:"words"`
	Letters       int `json:"letters"`
	Polysyllables int `json:"polysyllables"`
	Difficult     int `json:"difficult"`
}

// AvgSentenceLength is words per sentence.
func (p Profile) AvgSentenceLength() float64 {
	if p.Sentences == 0 {
		return 0
	}
	return float64(p.Words) / float64(p.Sentences)
}

// AvgWordLength is letters per word, the syllable proxy.
func (p Profile) AvgWordLength() float64 {
	if p.Words == 0 {
		return 0
	}
	return float64(p.Letters) / float64(p.Words)
}

// Ease is the Flesch reading-ease formula.
func Ease(p Profile) float64 {
	return 206.835 - 1.015*p.AvgSentenceLength() - 84.6*p.AvgWordLength()
}

// Grade is the Flesch-Kincaid grade-level formula.
func Grade(p Profile) float64 {
	return 0.39*p.AvgSentenceLength() + 11.8*p.AvgWordLength() - 15.59
}

// DaleChall is the Dale-Chall score with difficult words taken from the
// frequent-word proxy.
func DaleChall(p Profile) float64 {
	pct := 0.0
	if p.Words > 0 {
		pct = 100 * float64(p.Difficult) / float64(p.Words)
	}
	return 0.1579*pct + 0.0496*p.AvgSentenceLength() + 3.6365
}

// SMOG is the SMOG index with polysyllables taken from the length proxy.
func SMOG(p Profile) float64 {
	if p.Sentences == 0 {
		return 0
	}
	return 1.0430*math.Sqrt(float64(p.Polysyllables)*30/float64(p.Sentences)) + 3.1291
}

// Scores is the full set of readability results for one profile.
type Scores struct {
	Status            stats.Status `json:"status"`
	Profile           Profile      `json:"profile"`
	AvgSentenceLength float64      `json:"avg_sentence_length"`
	AvgWordLength     float64      `json:"avg_word_length"`
	Ease              float64      `json:"ease"`
	Grade             float64      `json:"grade"`
	DaleChall         float64      `json:"dale_chall"`
	SMOG              float64      `json:"smog"`
}

// Score computes every formula. A profile without words or sentences yields
// InsufficientData and zero scores.
func Score(p Profile) Scores {
	s := Scores{Profile: p}
	if p.Words == 0 || p.Sentences == 0 {
		s.Status = stats.InsufficientData
		return s
	}
	s.AvgSentenceLength = p.AvgSentenceLength()
	s.AvgWordLength = p.AvgWordLength()
	s.Ease = Ease(p)
	s.Grade = Grade(p)
	s.DaleChall = DaleChall(p)
	s.SMOG = SMOG(p)
	return s
}
