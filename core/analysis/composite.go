package analysis

import (
	"sort"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/readability"
	"github.com/FocuswithJustin/versestats/core/stats"
)

func verseGematriaMean(v *corpus.Verse) float64 {
	if len(v.Tokens) == 0 {
		return 0
	}
	return float64(v.Gematria()) / float64(len(v.Tokens))
}

func verseWordLength(v *corpus.Verse) float64 {
	if len(v.Tokens) == 0 {
		return 0
	}
	letters := 0
	for i := range v.Tokens {
		letters += arabic.LetterCount(v.Tokens[i].Surface)
	}
	return float64(letters) / float64(len(v.Tokens))
}

// scalarAnomalies runs anomaly detection over per-group numeric aggregates.
func (a *Analyzer) scalarAnomalies(c *corpus.Corpus) []ScalarAnomaly {
	verseGroups := aggregate.Groups(c, aggregate.ScopeVerse, aggregate.Tokens)
	chapterGroups := aggregate.Groups(c, aggregate.ScopeChapter, aggregate.Tokens)
	verses := c.Verses()

	perVerse := func(name string, value func(*corpus.Verse) float64) ScalarAnomaly {
		obs := make([]anomaly.Observation[aggregate.GroupID], len(verseGroups))
		for i, g := range verseGroups {
			obs[i] = anomaly.Observation[aggregate.GroupID]{Key: g.ID, Value: value(&verses[g.Segments[0].Ordinal])}
		}
		return ScalarAnomaly{Name: name, Scope: aggregate.ScopeVerse, Outcome: anomaly.Detect(a.detector, obs)}
	}

	roots := aggregate.Run(verseGroups, aggregate.Unigram(aggregate.KeyFunc[tok, string](rootKey)), a.opts.Workers)
	rootMax := anomaly.DetectGroups(a.detector, roots, func(r aggregate.Result[string]) float64 {
		if top := r.Table.TopK(1); len(top) > 0 {
			return float64(top[0].Count)
		}
		return 0
	})

	gematria := aggregate.Run(chapterGroups, aggregate.Unigram(aggregate.KeyFunc[tok, int](gematriaKey)), a.opts.Workers)
	chapterGematria := anomaly.DetectGroups(a.detector, gematria, func(r aggregate.Result[int]) float64 {
		if r.Items == 0 {
			return 0
		}
		sum := 0
		for _, e := range r.Table.Ranked() {
			sum += e.Key * e.Count
		}
		return float64(sum) / float64(r.Items)
	})

	lengthObs := make([]anomaly.Observation[aggregate.GroupID], len(chapterGroups))
	for i, g := range chapterGroups {
		lengthObs[i] = anomaly.Observation[aggregate.GroupID]{
			Key:   g.ID,
			Value: float64(g.Items()) / float64(len(g.Segments)),
		}
	}

	return []ScalarAnomaly{
		perVerse("verse-word-count", func(v *corpus.Verse) float64 { return float64(len(v.Tokens)) }),
		perVerse("verse-gematria-mean", verseGematriaMean),
		{Name: "verse-root-max", Scope: aggregate.ScopeVerse, Outcome: rootMax},
		{Name: "chapter-gematria-mean", Scope: aggregate.ScopeChapter, Outcome: chapterGematria},
		{Name: "chapter-verse-length", Scope: aggregate.ScopeChapter, Outcome: anomaly.Detect(a.detector, lengthObs)},
	}
}

// Tier is one semantic-density partition.
type Tier struct {
	Name           string        `json:"name"`
	Verses         int           `json:"verses"`
	WordLength     stats.Summary `json:"word_length"`
	SentenceLength stats.Summary `json:"sentence_length"`
}

// SemanticComplexity partitions verses by semantic density.
type SemanticComplexity struct {
	Fallback   bool    `json:"fallback"`
	LowMedium  float64 `json:"low_medium"`
	MediumHigh float64 `json:"medium_high"`
	Tiers      []Tier  `json:"tiers"`
}

// semanticDensity is the largest count of any classified semantic group in
// the verse; verses with no resolved roots have density zero.
func semanticDensity(v *corpus.Verse) float64 {
	counts := make(map[string]int)
	best := 0
	for i := range v.Tokens {
		k, _ := semanticKey(&v.Tokens[i])
		if k == Unclassified {
			continue
		}
		counts[k]++
		best = max(best, counts[k])
	}
	return float64(best)
}

// SemanticDistribution splits verses into low, medium and high density
// tertiles and summarizes word and sentence length in each. When fewer than
// two verses exist or both tertile boundaries coincide, every verse is
// placed in medium and Fallback is set.
func SemanticDistribution(c *corpus.Corpus) SemanticComplexity {
	verses := c.Verses()
	densities := make([]float64, len(verses))
	for i := range verses {
		densities[i] = semanticDensity(&verses[i])
	}

	var out SemanticComplexity
	bounds, st := stats.Quantiles(densities, 3)
	if st != stats.OK || bounds[0] == bounds[1] {
		out.Fallback = true
	} else {
		out.LowMedium, out.MediumHigh = bounds[0], bounds[1]
	}

	names := []string{"low", "medium", "high"}
	wordLen := make([][]float64, 3)
	sentLen := make([][]float64, 3)
	for i := range verses {
		tier := 1
		if !out.Fallback {
			switch d := densities[i]; {
			case d <= out.LowMedium:
				tier = 0
			case d <= out.MediumHigh:
				tier = 1
			default:
				tier = 2
			}
		}
		wordLen[tier] = append(wordLen[tier], verseWordLength(&verses[i]))
		sentLen[tier] = append(sentLen[tier], float64(len(verses[i].Tokens)))
	}
	for t, name := range names {
		out.Tiers = append(out.Tiers, Tier{
			Name:           name,
			Verses:         len(wordLen[t]),
			WordLength:     stats.Describe(wordLen[t]),
			SentenceLength: stats.Describe(sentLen[t]),
		})
	}
	return out
}

// LengthDistribution is the distribution of verse lengths for one index.
type LengthDistribution struct {
	Index     int            `json:"index"`
	Frequency []stats.Bucket `json:"frequency"`
	Modes     []int          `json:"modes"`
	Summary   stats.Summary  `json:"summary"`
}

// SentenceLengths holds verse-length distributions by chapter and by verse
// index across chapters.
type SentenceLengths struct {
	ByChapter    []LengthDistribution `json:"by_chapter"`
	ByVerseIndex []LengthDistribution `json:"by_verse_index"`
}

func lengthDistribution(index int, lengths []int) LengthDistribution {
	return LengthDistribution{
		Index:     index,
		Frequency: stats.Frequency(lengths),
		Modes:     stats.Modes(lengths),
		Summary:   stats.Describe(stats.Floats(lengths)),
	}
}

// SentenceLengthDistributions computes the length distributions of c.
func SentenceLengthDistributions(c *corpus.Corpus) SentenceLengths {
	out := SentenceLengths{ByChapter: []LengthDistribution{}, ByVerseIndex: []LengthDistribution{}}
	for _, ch := range c.Chapters() {
		lengths := make([]int, len(ch.Verses))
		for i := range ch.Verses {
			lengths[i] = len(ch.Verses[i].Tokens)
		}
		out.ByChapter = append(out.ByChapter, lengthDistribution(ch.Index, lengths))
	}

	var byIndex [][]int
	for _, v := range c.Verses() {
		for len(byIndex) < v.Index {
			byIndex = append(byIndex, nil)
		}
		byIndex[v.Index-1] = append(byIndex[v.Index-1], len(v.Tokens))
	}
	for i, lengths := range byIndex {
		if len(lengths) > 0 {
			out.ByVerseIndex = append(out.ByVerseIndex, lengthDistribution(i+1, lengths))
		}
	}
	return out
}

// LengthAverage is the mean per-token gematria of verses of one length.
type LengthAverage struct {
	Length       int     `json:"length"`
	Verses       int     `json:"verses"`
	MeanGematria float64 `json:"mean_gematria"`
}

// Correlation relates verse length to mean per-token gematria value.
type Correlation struct {
	Status      stats.Status    `json:"status"`
	Coefficient float64         `json:"coefficient"`
	ByLength    []LengthAverage `json:"by_length"`
}

// LengthGematriaCorrelation computes the Pearson correlation between verse
// length and mean token gematria over non-empty verses.
func LengthGematriaCorrelation(c *corpus.Corpus) Correlation {
	var lengths, means []float64
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, v := range c.Verses() {
		n := len(v.Tokens)
		if n == 0 {
			continue
		}
		m := verseGematriaMean(&v)
		lengths = append(lengths, float64(n))
		means = append(means, m)
		sums[n] += m
		counts[n]++
	}

	out := Correlation{ByLength: []LengthAverage{}}
	out.Coefficient, out.Status = stats.Pearson(lengths, means)
	keys := make([]int, 0, len(counts))
	for n := range counts {
		keys = append(keys, n)
	}
	sort.Ints(keys)
	for _, n := range keys {
		out.ByLength = append(out.ByLength, LengthAverage{
			Length:       n,
			Verses:       counts[n],
			MeanGematria: sums[n] / float64(counts[n]),
		})
	}
	return out
}

// SubsetResult compares one named chapter subset.
type SubsetResult struct {
	Name         string                    `json:"name"`
	Chapters     string                    `json:"chapters"`
	Verses       int                       `json:"verses"`
	TopWords     []aggregate.Entry[string] `json:"top_words"`
	TopGematria  []aggregate.Entry[int]    `json:"top_gematria"`
	Readability  readability.Scores        `json:"readability"`
	VerseLengths stats.Summary             `json:"verse_lengths"`
}

func (a *Analyzer) compare(c *corpus.Corpus, sub Subset, scorer *readability.Scorer) SubsetResult {
	part := c.Subset(sub.Chapters.Contains)
	words := aggregate.Run(aggregate.Groups(part, aggregate.ScopeCorpus, aggregate.Tokens),
		aggregate.Unigram(aggregate.KeyFunc[tok, string](wordKey)), a.opts.Workers)[0].Table
	values := aggregate.Run(aggregate.Groups(part, aggregate.ScopeCorpus, aggregate.Tokens),
		aggregate.Unigram(aggregate.KeyFunc[tok, int](gematriaKey)), a.opts.Workers)[0].Table

	lengths := make([]int, part.Len())
	for i, v := range part.Verses() {
		lengths[i] = len(v.Tokens)
	}
	return SubsetResult{
		Name:         sub.Name,
		Chapters:     sub.Chapters.String(),
		Verses:       part.Len(),
		TopWords:     words.TopK(a.opts.TopK),
		TopGematria:  values.TopK(a.opts.TopK),
		Readability:  scorer.ScoreCorpus(part),
		VerseLengths: stats.Describe(stats.Floats(lengths)),
	}
}
