package arabic

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"basmala diacritics and wasla", "بِسْمِ ٱللَّهِ", "بسم الله"},
		{"superscript alef and maqsura", "مُوسَىٰ", "موسي"},
		{"taa marbuta with tanween", "رَحْمَةً", "رحمه"},
		{"hamza alef forms", "أ إ آ", "ا ا ا"},
		{"hamza on carriers", "سُئِلَ مُؤْمِن", "سيل مومن"},
		{"zero width joiner", "ال\u200dله", "الله"},
		{"byte order mark", "\ufeffالحمد", "الحمد"},
		{"tatweel", "الرحـــمن", "الرحمن"},
		{"whitespace collapse", "  الحمد \t لله  ", "الحمد لله"},
		{"persian letters", "کتاب ی", "كتاب ي"},
		{"unknown passes through", "abc 123", "abc 123"},
		{"case folding", "ABC", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	samples := []string{
		"",
		"بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ",
		"ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ",
		"ذَٰلِكَ ٱلْكِتَٰبُ لَا رَيْبَ ۛ فِيهِ ۛ هُدًى لِّلْمُتَّقِينَ",
		"يَٰٓأَيُّهَا ٱلنَّاسُ \u200c ٱعْبُدُوا۟",
		"Mixed ÉCOLE text ß with \u200e marks",
		"  multiple   spaces\n\tand tabs ",
		"١٢٣ ؟ ، ؛",
	}

	for _, s := range samples {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", s, once, twice)
		}
	}
}

func TestStripDiacritics(t *testing.T) {
	if got := StripDiacritics("رَبِّ"); got != "رب" {
		t.Errorf("StripDiacritics() = %q, want %q", got, "رب")
	}
	// Step 1 alone must not fold letters that do not decompose.
	if got := StripDiacritics("رَحْمَةٌ"); got != "رحمة" {
		t.Errorf("StripDiacritics() = %q, want %q", got, "رحمة")
	}
}

func TestFoldLetter(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'ى', 'ي'},
		{'ة', 'ه'},
		{'ٱ', 'ا'},
		{'ب', 'ب'},
		{'x', 'x'},
	}
	for _, tt := range tests {
		if got := FoldLetter(tt.in); got != tt.want {
			t.Errorf("FoldLetter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"two words", "الحمد لله", []string{"الحمد", "لله"}},
		{"arabic punctuation", "قال، نعم؟ (لا)", []string{"قال", "نعم", "لا"}},
		{"ascii punctuation", "a.b,c;d:e!f?g-h", []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
		{"symbols split", "فيه + هدي", []string{"فيه", "هدي"}},
		{"only separators", " ، . ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	in := Normalize("إِنَّا أَعْطَيْنَٰكَ ٱلْكَوْثَرَ")
	first := Tokenize(in)
	for i := 0; i < 10; i++ {
		if got := Tokenize(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize run %d = %q, want %q", i, got, first)
		}
	}
}

func TestLetters(t *testing.T) {
	if got := string(Letters("لله١")); got != "لله" {
		t.Errorf("Letters() = %q, want %q", got, "لله")
	}
	if got := LetterCount("الحمد"); got != 5 {
		t.Errorf("LetterCount() = %d, want 5", got)
	}
	if got := LetterCount(""); got != 0 {
		t.Errorf("LetterCount(\"\") = %d, want 0", got)
	}
}
