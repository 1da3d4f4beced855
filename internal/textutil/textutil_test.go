package textutil

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower-cases", "Delve Into", "delve into"},
		{"collapses blanks", "a  \t b", "a b"},
		{"keeps single line breaks", "one\r\n\r\n  two", "one\ntwo"},
		{"folds quotes", "It’s “fine”", `it's "fine"`},
		{"trims", "   padded   ", "padded"},
		{"keeps punctuation", "Hello, world!", "hello, world!"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"simple text", "Hello world", 2},
		{"with punctuation", "Hello, world! How are you?", 5},
		{"contraction", "It's what they’re doing", 4},
		{"numbers", "Page 42 of 100", 4},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Words(tt.input); len(got) != tt.expected {
				t.Errorf("expected %d words, got %d (%v)", tt.expected, len(got), got)
			}
		})
	}
}

func TestContext(t *testing.T) {
	text := strings.Repeat("a", 50) + "match" + strings.Repeat("b", 50)
	start := 50
	end := 55

	got := Context(text, start, end, 40)
	want := "..." + strings.Repeat("a", 40) + "match" + strings.Repeat("b", 40) + "..."
	if got != want {
		t.Errorf("Context() = %q, want %q", got, want)
	}

	short := "say match now"
	if got := Context(short, 4, 9, 40); got != short {
		t.Errorf("Context() on short text = %q, want %q", got, short)
	}

	multi := "héllo wörld"
	got = Context(multi, 7, 12, 3)
	if !strings.Contains(got, "wörld") {
		t.Errorf("Context() split a rune: %q", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		places   int
		expected float64
	}{
		{6.04, 1, 6.0},
		{6.06, 1, 6.1},
		{0.446, 2, 0.45},
		{-1.26, 1, -1.3},
	}

	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.expected {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.expected)
		}
	}
}
