package readability

import (
	"strconv"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
)

// DefaultPolysyllableThreshold is the letter count a token must exceed to
// count as a polysyllable.
const DefaultPolysyllableThreshold = 4

// DefaultCommonWords is a small built-in frequent-word set for corpora too
// small to derive one from.
var DefaultCommonWords = []string{
	"في", "من", "على", "إلى", "و", "ما", "كان", "الله", "عن", "لا", "كل", "مع", "هذا", "ذلك", "هو", "هي",
}

// Scorer builds profiles from aggregation tables and scores them.
type Scorer struct {
	polysyllable int
	frequent     map[string]bool
}

// NewScorer returns a Scorer. threshold must be at least 1. frequent is the
// reference set for the difficult-word proxy; it is normalized on entry.
func NewScorer(threshold int, frequent []string) (*Scorer, error) {
	if threshold < 1 {
		return nil, errors.NewValidation("readability.polysyllable_threshold", strconv.Itoa(threshold), "must be at least 1")
	}
	set := make(map[string]bool, len(frequent))
	for _, w := range frequent {
		if n := arabic.Normalize(w); n != "" {
			set[n] = true
		}
	}
	return &Scorer{polysyllable: threshold, frequent: set}, nil
}

// FrequentWords returns the keys of the k most frequent words of t.
func FrequentWords(t *aggregate.Table[string], k int) []string {
	top := t.TopK(k)
	out := make([]string, len(top))
	for i, e := range top {
		out[i] = e.Key
	}
	return out
}

// Profile composes a profile from a group's word table and word-length table.
func (s *Scorer) Profile(words *aggregate.Table[string], lengths *aggregate.Table[int], sentences int) Profile {
	p := Profile{Sentences: sentences, Words: words.Total(), Difficult: words.Total()}
	for _, e := range lengths.Ranked() {
		p.Letters += e.Key * e.Count
		if e.Key > s.polysyllable {
			p.Polysyllables += e.Count
		}
	}
	for w := range s.frequent {
		p.Difficult -= words.Count(w)
	}
	return p
}

// GroupScores is the readability of one group.
type GroupScores struct {
	Group aggregate.GroupID `json:"group"`
	Scores
}

// wordLength keys a token by its letter count.
func wordLength(token string) (int, bool) {
	return arabic.LetterCount(token), true
}

// ScoreScope scores every group of c at scope.
func (s *Scorer) ScoreScope(c *corpus.Corpus, scope aggregate.Scope, workers int) []GroupScores {
	groups := aggregate.Groups(c, scope, aggregate.Words)
	words := aggregate.Run(groups, aggregate.Unigram[string, string](aggregate.Identity[string]), workers)
	lengths := aggregate.Run(groups, aggregate.Unigram[string, int](wordLength), workers)

	out := make([]GroupScores, len(groups))
	for i, g := range groups {
		out[i] = GroupScores{
			Group:  g.ID,
			Scores: Score(s.Profile(words[i].Table, lengths[i].Table, len(g.Segments))),
		}
	}
	return out
}

// ScoreCorpus scores c as a single group.
func (s *Scorer) ScoreCorpus(c *corpus.Corpus) Scores {
	return s.ScoreScope(c, aggregate.ScopeCorpus, 1)[0].Scores
}
