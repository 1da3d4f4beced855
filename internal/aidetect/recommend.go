package aidetect

import "github.com/zombar/readability-analyzer/internal/models"

var headlineTips = map[string]string{
	DeadGiveaway:    "Replace flagged idioms with concrete phrasing: 'explore' instead of 'delve into', 'shows' instead of 'a testament to'",
	HighProbability: "Cut formal transitions and start sentences directly with your point",
	Moderate:        "Swap stock qualifiers like 'significant' or 'comprehensive' for specific details",
	Structural:      "Vary paragraph structure instead of leaning on ordinal lists and balanced contrasts",
}

var (
	metaCommentary = []string{"it's important to note that", "it is important to note", "it's worth noting", "it should be noted"}
	jargon         = []string{"leverage", "utilize", "comprehensive", "robust"}
)

// recommend derives tips from the heaviest category present, followed by
// narrower tips in a fixed order. No matches means no tips.
func (d *Detector) recommend(matches []models.Match, counts map[string]int, ordinals int, score float64) []string {
	tips := []string{}
	if len(matches) == 0 {
		return tips
	}

	for _, cat := range d.catalog.categories {
		if counts[cat.Name] > 0 {
			if tip, ok := headlineTips[cat.Name]; ok {
				tips = append(tips, tip)
			}
			break
		}
	}

	phrases := make(map[string]bool, len(matches))
	for _, m := range matches {
		phrases[m.Phrase] = true
	}

	if counts[HighProbability] > 2 {
		tips = append(tips, "Replace 'moreover' and 'furthermore' with 'also', or connect ideas without a transition word")
	}
	if anyOf(phrases, metaCommentary) {
		tips = append(tips, "Remove meta-commentary like 'it's important to note' and state the point itself")
	}
	if anyOf(phrases, jargon) {
		tips = append(tips, "Simplify business jargon: 'use' instead of 'utilize', 'strong' instead of 'robust'")
	}
	if ordinals >= d.cfg.OrdinalMinMarkers {
		tips = append(tips, "Avoid rigid firstly/secondly/thirdly sequences")
	}

	switch {
	case score > 60:
		tips = append(tips, "Write in a more conversational tone and add specific examples or personal detail")
	case score > 40:
		tips = append(tips, "Add more variety in sentence structure and vocabulary")
	}

	return tips
}

func anyOf(set map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if set[c] {
			return true
		}
	}
	return false
}
