package corpus

import (
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"2", Range{Ref{2, 1}, Ref{2, 0}}},
		{"2:255", Range{Ref{2, 255}, Ref{2, 255}}},
		{"2:1-5", Range{Ref{2, 1}, Ref{2, 5}}},
		{" 2:1 - 3:4 ", Range{Ref{2, 1}, Ref{3, 4}}},
		{"2-4", Range{Ref{2, 1}, Ref{4, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, in := range []string{"", "a:b", "2:", "0:1", "2:0", "2:5-3", "3-2", "2:1-1:9"} {
		if _, err := ParseRange(in); err == nil {
			t.Errorf("ParseRange(%q) error = nil, want error", in)
		}
	}
}

func TestRangeContains(t *testing.T) {
	whole, _ := ParseRange("2-3")
	span, _ := ParseRange("2:5-3:2")
	tests := []struct {
		r    Range
		ref  Ref
		want bool
	}{
		{whole, Ref{2, 1}, true},
		{whole, Ref{3, 999}, true},
		{whole, Ref{4, 1}, false},
		{whole, Ref{1, 7}, false},
		{span, Ref{2, 4}, false},
		{span, Ref{2, 5}, true},
		{span, Ref{2, 286}, true},
		{span, Ref{3, 2}, true},
		{span, Ref{3, 3}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.ref); got != tt.want {
			t.Errorf("%+v.Contains(%v) = %v, want %v", tt.r, tt.ref, got, tt.want)
		}
	}
}

func TestParseRef(t *testing.T) {
	got, err := ParseRef("2:255")
	if err != nil || got != (Ref{2, 255}) {
		t.Errorf("ParseRef() = %v, %v", got, err)
	}
	if _, err := ParseRef("2"); err == nil {
		t.Error("ParseRef(2) error = nil, want error")
	}
	if _, err := ParseRef("2:1-4"); err == nil {
		t.Error("ParseRef(2:1-4) error = nil, want error")
	}
	if s := (Ref{2, 255}).String(); s != "2:255" {
		t.Errorf("String() = %q", s)
	}
}

func TestParseChapterSet(t *testing.T) {
	cs, err := ParseChapterSet("1-6, 9,12-14")
	if err != nil {
		t.Fatalf("ParseChapterSet() error = %v", err)
	}
	for ch, want := range map[int]bool{1: true, 6: true, 7: false, 9: true, 11: false, 13: true, 15: false} {
		if got := cs.Contains(ch); got != want {
			t.Errorf("Contains(%d) = %v, want %v", ch, got, want)
		}
	}
	if cs.String() != "1-6, 9,12-14" {
		t.Errorf("String() = %q", cs.String())
	}

	for _, in := range []string{"", "a", "3-1", "0", "1,,2"} {
		if _, err := ParseChapterSet(in); err == nil {
			t.Errorf("ParseChapterSet(%q) error = nil, want error", in)
		}
	}
}
