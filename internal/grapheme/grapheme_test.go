package grapheme

import "testing"

func TestCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + "b"
	if c := Count(text); c != 3 {
		t.Fatalf("count=%d, want %d", c, 3)
	}
	if c := Count(""); c != 0 {
		t.Fatalf("count empty=%d, want %d", c, 0)
	}
}

func TestWidth_WideRunes(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "abc", want: 3},
		{text: "日本", want: 4},
		{text: "éx", want: 2},
	}
	for _, tc := range cases {
		if got := Width(tc.text); got != tc.want {
			t.Fatalf("Width(%q): got %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{text: "Honda", width: 10, want: "Honda"},
		{text: "Honda", width: 5, want: "Honda"},
		{text: "Honda Civic", width: 6, want: "Honda…"},
		{text: "日本語", width: 4, want: "日…"},
		{text: "abc", width: 0, want: ""},
		{text: "abc", width: 1, want: "…"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.text, tc.width); got != tc.want {
			t.Fatalf("Truncate(%q, %d): got %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestFit_PadsToExactWidth(t *testing.T) {
	if got, want := Fit("ab", 4, false), "ab  "; got != want {
		t.Fatalf("left: got %q, want %q", got, want)
	}
	if got, want := Fit("42", 4, true), "  42"; got != want {
		t.Fatalf("right: got %q, want %q", got, want)
	}
	if got, want := Fit("abcdef", 4, false), "abc…"; got != want {
		t.Fatalf("truncated: got %q, want %q", got, want)
	}
	if got := Width(Fit("日本語", 5, false)); got != 5 {
		t.Fatalf("wide fit width: got %d, want %d", got, 5)
	}
}
