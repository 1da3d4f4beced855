// Package textutil holds the text helpers shared by the detector and the
// readability packages: normalization, word extraction and context windows.
package textutil

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	horizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	spacedNewlines  = regexp.MustCompile(`[ ]*\n[\s]*`)
	wordFinder      = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"\r\n", "\n",
	"\r", "\n",
)

// Normalize lower-cases text, folds typographic quotes, and collapses
// whitespace: runs of blanks become one space and runs containing a line
// break become one newline. Punctuation is preserved.
func Normalize(text string) string {
	text = quoteReplacer.Replace(text)
	text = strings.ToLower(text)
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = spacedNewlines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Words extracts lower-cased words with punctuation removed
func Words(text string) []string {
	text = quoteReplacer.Replace(text)
	return wordFinder.FindAllString(strings.ToLower(text), -1)
}

// Letters counts letters and digits
func Letters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Context returns the text within radius bytes of [start, end), widened to
// rune boundaries and clipped to the text. An ellipsis marks each clipped side.
func Context(text string, start, end, radius int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}

	from := start - radius
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}

	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	snippet := strings.TrimSpace(strings.ReplaceAll(text[from:to], "\n", " "))
	if from > 0 {
		snippet = "..." + snippet
	}
	if to < len(text) {
		snippet += "..."
	}
	return snippet
}

// Round rounds to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
