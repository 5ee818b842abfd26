package search

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
)

const text = `1|1|بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ
1|2|ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ
1|3|ٱلرَّحْمَٰنِ ٱلرَّحِيمِ
2|1|الم
2|2|ذلك الكتاب لا ريب فيه هدي للمتقين
3|1|الم
3|2|الله لا اله الا هو الحي القيوم`

func fixture(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Load(strings.NewReader(text), nil)
	if err != nil {
		t.Fatalf("corpus.Load() error = %v", err)
	}
	return c
}

func refs(hits []Hit) string {
	parts := make([]string, len(hits))
	for i, h := range hits {
		parts[i] = h.Ref.String()
	}
	return strings.Join(parts, ",")
}

func TestWordAndPhrase(t *testing.T) {
	c := fixture(t)

	tests := []struct {
		name string
		got  []Hit
		want string
	}{
		{"diacritized word", Word(c, "ٱلرَّحِيمِ"), "1:1,1:3"},
		{"phrase", Phrase(c, "الرحمن الرحيم"), "1:1,1:3"},
		{"absent", Word(c, "قلم"), ""},
		{"empty query", Word(c, "  "), ""},
		{"in chapter", InChapter(c, "الم", 3), "3:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refs(tt.got); got != tt.want {
				t.Errorf("refs = %q, want %q", got, tt.want)
			}
		})
	}

	hits := Phrase(c, "الرحمن الرحيم")
	if hits[0].Position != 3 || hits[1].Position != 1 || hits[0].Text != "الرحمن الرحيم" {
		t.Errorf("hits = %+v", hits)
	}
	if n := Count(c, "لا"); n != 2 {
		t.Errorf("Count(لا) = %d, want 2", n)
	}
}

func TestInRangeAndPosition(t *testing.T) {
	c := fixture(t)
	r, err := corpus.ParseRange("1:2-2:2")
	if err != nil {
		t.Fatal(err)
	}
	if got := refs(InRange(c, "الرحيم", r)); got != "1:3" {
		t.Errorf("InRange() = %q, want 1:3", got)
	}

	hits, err := AtPosition(c, "الرحمن", 1)
	if err != nil || refs(hits) != "1:3" {
		t.Errorf("AtPosition() = %q, %v", refs(hits), err)
	}
	if _, err := AtPosition(c, "x", 0); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("AtPosition(0) error = %v", err)
	}
}

func TestWordCount(t *testing.T) {
	c := fixture(t)
	if got := refs(WordCount(c, 2)); got != "1:3" {
		t.Errorf("WordCount(2) = %q", got)
	}
	hits, err := WordCountMultiple(c, 4)
	if err != nil || refs(hits) != "1:1,1:2" {
		t.Errorf("WordCountMultiple(4) = %q, %v", refs(hits), err)
	}
	if _, err := WordCountMultiple(c, 0); err == nil {
		t.Error("WordCountMultiple(0) error = nil")
	}
}

func TestGematriaSearch(t *testing.T) {
	c := fixture(t)

	hits := TokensWithValue(c, 66)
	if refs(hits) != "1:1,3:2" || hits[0].Text != "الله" || hits[0].Position != 2 {
		t.Errorf("TokensWithValue(66) = %+v", hits)
	}
	// الم = 1 + 30 + 40
	if got := refs(VersesWithValue(c, 71)); got != "2:1,3:1" {
		t.Errorf("VersesWithValue(71) = %q", got)
	}
}

func TestValueMatches(t *testing.T) {
	c, err := corpus.Load(strings.NewReader("1|1|اب\n1|2|اب ب ج\n3|1|اب"), nil)
	if err != nil {
		t.Fatal(err)
	}
	// value(اب) = 3
	tests := []struct {
		attr Attribute
		want string
	}{
		{AttrWordCount, "1:2"},
		{AttrVerseIndex, ""},
		{AttrChapterIndex, "3:1"},
	}
	for _, tt := range tests {
		hits, err := ValueMatches(c, "اب", tt.attr)
		if err != nil {
			t.Fatalf("ValueMatches(%s) error = %v", tt.attr, err)
		}
		if got := refs(hits); got != tt.want {
			t.Errorf("ValueMatches(%s) = %q, want %q", tt.attr, got, tt.want)
		}
	}
	if _, err := ValueMatches(c, "اب", Attribute("length")); err == nil {
		t.Error("ValueMatches(unknown attribute) error = nil")
	}
}
