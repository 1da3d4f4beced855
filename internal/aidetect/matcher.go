package aidetect

import (
	"sort"
	"strconv"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

type orderedMatch struct {
	match models.Match
	order int
}

// Match scans normalized text for every pattern of the categories active at
// the given sensitivity. Matches come back in document order; overlapping hits
// of different phrases are all kept, while the same phrase at the same offset
// is reported once.
func (c *Catalog) Match(text string, sensitivity models.Sensitivity) []models.Match {
	var found []orderedMatch
	seen := make(map[string]bool)

	add := func(cat *Category, rule string, s span, confidence float64) {
		key := s.phrase + "@" + strconv.Itoa(s.start)
		if seen[key] {
			return
		}
		seen[key] = true
		found = append(found, orderedMatch{
			match: models.Match{
				Phrase:     s.phrase,
				Category:   cat.Name,
				Rule:       rule,
				Start:      s.start,
				End:        s.end,
				Confidence: confidence,
				Context:    textutil.Context(text, s.start, s.end, ContextRadius),
			},
			order: cat.order,
		})
	}

	for _, cat := range c.categories {
		if !cat.Active(sensitivity) {
			continue
		}
		for _, p := range cat.phrases {
			for _, loc := range p.re.FindAllStringIndex(text, -1) {
				add(cat, "", span{loc[0], loc[1], p.phrase}, p.confidence)
			}
		}
		for _, rule := range cat.rules {
			for _, s := range rule.detect(text) {
				add(cat, rule.id, s, rule.confidence)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.match.Start != b.match.Start {
			return a.match.Start < b.match.Start
		}
		if a.match.End != b.match.End {
			return a.match.End > b.match.End
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.match.Phrase < b.match.Phrase
	})

	matches := make([]models.Match, len(found))
	for i, f := range found {
		matches[i] = f.match
	}
	return matches
}
