// Package tokenize splits text into sentences. The default tokenizer uses the
// pre-trained English Punkt model; a rule-based splitter is available when the
// model cannot be loaded.
package tokenize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Tokenizer splits text into trimmed, non-empty sentences in document order
type Tokenizer interface {
	Sentences(text string) []string
}

// Punkt wraps the English Punkt sentence tokenizer
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the embedded English training data
func NewPunkt() (*Punkt, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load punkt model: %w", err)
	}
	return &Punkt{tokenizer: tok}, nil
}

// Sentences implements Tokenizer
func (p *Punkt) Sentences(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var (
	sentenceEnd    = regexp.MustCompile(`[.!?]+["')\]]*\s+`)
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
)

// Rules splits on terminal punctuation followed by whitespace and on blank lines
type Rules struct{}

// Sentences implements Tokenizer
func (Rules) Sentences(text string) []string {
	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		last := 0
		for _, loc := range sentenceEnd.FindAllStringIndex(para, -1) {
			if s := strings.TrimSpace(para[last:loc[1]]); s != "" {
				out = append(out, s)
			}
			last = loc[1]
		}
		if s := strings.TrimSpace(para[last:]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Default returns the Punkt tokenizer, or the rule-based one if the model fails to load
func Default() Tokenizer {
	p, err := NewPunkt()
	if err != nil {
		slog.Warn("punkt tokenizer unavailable, falling back to rules", "error", err)
		return Rules{}
	}
	return p
}
