package corpus

import (
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// Range is an inclusive span of verses. A zero Verse in End means the end
// of that chapter.
type Range struct {
	Start Ref `json:"start"`
	End   Ref `json:"end"`
}

// Contains reports whether ref falls inside the range.
func (r Range) Contains(ref Ref) bool {
	end := r.End
	if end.Verse == 0 {
		end.Verse = math.MaxInt
	}
	return ref.Compare(r.Start) >= 0 && ref.Compare(end) <= 0
}

// rangeGrammar accepts "2", "2:255", "2:1-5", "2:1-3:4" and "2-4".
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeGrammar struct {
	Start *pointGrammar `@@`
	End   *pointGrammar `( "-" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type pointGrammar struct {
	First  int  `@Int`
	Second *int `( ":" @Int )?`
}

// chapterSetGrammar accepts "1-6,9,12-14".
//
//nolint:govet // participle grammar tags are not standard struct tags
type chapterSetGrammar struct {
	Items []*chapterItem `@@ ( "," @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterItem struct {
	From int  `@Int`
	To   *int `( "-" @Int )?`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	rangeParser = participle.MustBuild[rangeGrammar](
		participle.Lexer(refLexer),
		participle.Elide("Whitespace"),
	)
	chapterSetParser = participle.MustBuild[chapterSetGrammar](
		participle.Lexer(refLexer),
		participle.Elide("Whitespace"),
	)
)

// ParseRef parses a single verse reference "chapter:verse".
func ParseRef(s string) (Ref, error) {
	r, err := ParseRange(s)
	if err != nil {
		return Ref{}, err
	}
	if r.Start != r.End || r.Start.Verse == 0 {
		return Ref{}, errors.NewParse("reference", 0, s, "expected chapter:verse")
	}
	return r.Start, nil
}

// ParseRange parses a verse range.
//
//   - "2" is all of chapter 2
//   - "2:255" is a single verse
//   - "2:1-5" is verses 1 to 5 of chapter 2
//   - "2:1-3:4" spans chapters
//   - "2-4" is chapters 2 to 4
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, errors.NewParse("reference", 0, s, "empty reference")
	}
	parsed, err := rangeParser.ParseString("", s)
	if err != nil {
		return Range{}, &errors.ParseError{Format: "reference", Content: s, Message: "invalid reference", Err: err}
	}

	var r Range
	start := parsed.Start
	switch {
	case start.Second == nil:
		r.Start = Ref{Chapter: start.First, Verse: 1}
		r.End = Ref{Chapter: start.First}
	default:
		r.Start = Ref{Chapter: start.First, Verse: *start.Second}
		r.End = r.Start
	}

	if end := parsed.End; end != nil {
		switch {
		case end.Second != nil:
			r.End = Ref{Chapter: end.First, Verse: *end.Second}
		case start.Second != nil:
			r.End = Ref{Chapter: start.First, Verse: end.First}
		default:
			r.End = Ref{Chapter: end.First}
		}
	}

	if r.Start.Chapter < 1 || r.Start.Verse < 1 || r.End.Chapter < 1 || r.End.Verse < 0 {
		return Range{}, errors.NewParse("reference", 0, s, "indices must be positive")
	}
	if end := r.End; end.Verse == 0 {
		if end.Chapter < r.Start.Chapter {
			return Range{}, errors.NewParse("reference", 0, s, "range ends before it starts")
		}
	} else if end.Compare(r.Start) < 0 {
		return Range{}, errors.NewParse("reference", 0, s, "range ends before it starts")
	}
	return r, nil
}

type chapterSpan struct{ from, to int }

// ChapterSet is a set of chapter indices given as a selector string.
type ChapterSet struct {
	spec  string
	spans []chapterSpan
}

// ParseChapterSet parses a comma-separated list of chapters and ranges.
func ParseChapterSet(s string) (ChapterSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ChapterSet{}, errors.NewParse("chapter set", 0, s, "empty chapter set")
	}
	parsed, err := chapterSetParser.ParseString("", s)
	if err != nil {
		return ChapterSet{}, &errors.ParseError{Format: "chapter set", Content: s, Message: "invalid chapter set", Err: err}
	}

	set := ChapterSet{spec: s}
	for _, item := range parsed.Items {
		span := chapterSpan{from: item.From, to: item.From}
		if item.To != nil {
			span.to = *item.To
		}
		if span.from < 1 || span.to < span.from {
			return ChapterSet{}, errors.NewParse("chapter set", 0, s,
				"bad span "+strconv.Itoa(span.from)+"-"+strconv.Itoa(span.to))
		}
		set.spans = append(set.spans, span)
	}
	return set, nil
}

// Contains reports whether chapter is in the set.
func (cs ChapterSet) Contains(chapter int) bool {
	for _, sp := range cs.spans {
		if chapter >= sp.from && chapter <= sp.to {
			return true
		}
	}
	return false
}

// String returns the selector the set was parsed from.
func (cs ChapterSet) String() string { return cs.spec }
