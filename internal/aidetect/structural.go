package aidetect

import (
	"fmt"
	"regexp"
	"strings"
)

// Structural rule ids
const (
	RuleOrdinalMarker    = "ordinal_marker"
	RuleBulletProse      = "bullet_prose"
	RuleBalancedContrast = "balanced_contrast"
)

type span struct {
	start  int
	end    int
	phrase string
}

// structuralRule detects a construction rather than a literal phrase
type structuralRule struct {
	id         string
	confidence float64
	detect     func(text string) []span
}

var (
	ordinalPattern  = `\b(?:firstly|secondly|thirdly|fourthly|fifthly|lastly)\b`
	bulletGlyphs    = `[•▪◦‣✓✔✅➤→]`
	boldLabel       = `\*\*[^*\n]{1,40}:\*\*`
	contrastNotOnly = `\bnot (?:only|just)\b[^.!?\n]{1,120}?\bbut(?: also)?\b`
	contrastWhile   = `(?m)(?:^|[.!?]\s+)(while\b[^,.!?\n]{1,80},)`
)

func newStructuralRule(id string) (*structuralRule, error) {
	switch id {
	case RuleOrdinalMarker:
		re, err := regexp.Compile(ordinalPattern)
		if err != nil {
			return nil, err
		}
		return &structuralRule{
			id:         id,
			confidence: 0.30,
			detect: func(text string) []span {
				var out []span
				for _, loc := range re.FindAllStringIndex(text, -1) {
					out = append(out, span{loc[0], loc[1], text[loc[0]:loc[1]]})
				}
				return out
			},
		}, nil

	case RuleBulletProse:
		glyph, err := regexp.Compile(bulletGlyphs)
		if err != nil {
			return nil, err
		}
		label, err := regexp.Compile(boldLabel)
		if err != nil {
			return nil, err
		}
		return &structuralRule{
			id:         id,
			confidence: 0.25,
			detect: func(text string) []span {
				var out []span
				for _, loc := range glyph.FindAllStringIndex(text, -1) {
					// a glyph opening its own line is genuine list formatting
					if atLineStart(text, loc[0]) {
						continue
					}
					out = append(out, span{loc[0], loc[1], text[loc[0]:loc[1]]})
				}
				for _, loc := range label.FindAllStringIndex(text, -1) {
					if atLineStart(text, loc[0]) {
						continue
					}
					out = append(out, span{loc[0], loc[1], text[loc[0]:loc[1]]})
				}
				return out
			},
		}, nil

	case RuleBalancedContrast:
		notOnly, err := regexp.Compile(contrastNotOnly)
		if err != nil {
			return nil, err
		}
		while, err := regexp.Compile(contrastWhile)
		if err != nil {
			return nil, err
		}
		return &structuralRule{
			id:         id,
			confidence: 0.35,
			detect: func(text string) []span {
				var out []span
				for _, loc := range notOnly.FindAllStringIndex(text, -1) {
					out = append(out, span{loc[0], loc[1], text[loc[0]:loc[1]]})
				}
				for _, loc := range while.FindAllStringSubmatchIndex(text, -1) {
					out = append(out, span{loc[2], loc[3], text[loc[2]:loc[3]]})
				}
				return out
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown structural rule %q", id)
}

// atLineStart reports whether only blanks sit between the previous line
// break (or the start of text) and pos.
func atLineStart(text string, pos int) bool {
	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	return strings.TrimSpace(text[lineStart:pos]) == ""
}
