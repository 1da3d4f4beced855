package aidetect

import (
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

// ScoreConfig holds the tunable constants of the score calculator. The bonus
// values are empirical and open to recalibration.
type ScoreConfig struct {
	ShortTextWords        int     `yaml:"short_text_words"`
	OrdinalMinMarkers     int     `yaml:"ordinal_min_markers"`
	OrdinalBonus          float64 `yaml:"ordinal_bonus"`
	BulletBonus           float64 `yaml:"bullet_bonus"`
	ContrastMinConstructs int     `yaml:"contrast_min_constructs"`
	ContrastBonus         float64 `yaml:"contrast_bonus"`
}

// DefaultScoreConfig returns the stock calibration
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		ShortTextWords:        50,
		OrdinalMinMarkers:     3,
		OrdinalBonus:          10,
		BulletBonus:           5,
		ContrastMinConstructs: 2,
		ContrastBonus:         8,
	}
}

// Score converts matches into a 0-100 likelihood. The base is the summed
// category weight per 100 words, scaled down linearly for texts shorter than
// ShortTextWords; structural bonuses are added once each and the total is
// clamped.
func (d *Detector) Score(matches []models.Match, wordCount int, sensitivity models.Sensitivity) models.AIScoreResult {
	counts := make(map[string]int)
	for _, cat := range d.catalog.categories {
		if cat.Active(sensitivity) {
			counts[cat.Name] = 0
		}
	}

	var weightSum float64
	ordinals := make(map[string]bool)
	bullets := 0
	contrasts := 0
	for _, m := range matches {
		counts[m.Category]++
		weightSum += d.catalog.Weight(m.Category)
		switch m.Rule {
		case RuleOrdinalMarker:
			ordinals[m.Phrase] = true
		case RuleBulletProse:
			bullets++
		case RuleBalancedContrast:
			contrasts++
		}
	}

	score := 0.0
	if wordCount > 0 {
		words := float64(wordCount)
		base := weightSum / words * 100
		if wordCount < d.cfg.ShortTextWords {
			base *= words / float64(d.cfg.ShortTextWords)
		}

		bonus := 0.0
		if len(ordinals) >= d.cfg.OrdinalMinMarkers {
			bonus += d.cfg.OrdinalBonus
		}
		if bullets > 0 {
			bonus += d.cfg.BulletBonus
		}
		if contrasts >= d.cfg.ContrastMinConstructs {
			bonus += d.cfg.ContrastBonus
		}

		score = clamp(base+bonus, 0, 100)
	}
	score = textutil.Round(score, 1)

	if matches == nil {
		matches = []models.Match{}
	}

	return models.AIScoreResult{
		Score:           score,
		Interpretation:  interpretScore(score),
		Matches:         matches,
		CategoryCounts:  counts,
		PatternSummary:  d.summarize(matches, counts),
		Sensitivity:     sensitivity,
		Recommendations: d.recommend(matches, counts, len(ordinals), score),
		WordCount:       wordCount,
	}
}

func (d *Detector) summarize(matches []models.Match, counts map[string]int) models.PatternSummary {
	summary := models.PatternSummary{TotalPatterns: len(matches)}
	best := 0
	for _, cat := range d.catalog.categories {
		n := counts[cat.Name]
		if n == 0 {
			continue
		}
		summary.CategoriesTriggered++
		// catalog order breaks ties toward the heavier category
		if n > best {
			best = n
			summary.MostCommonCategory = cat.Name
		}
	}
	return summary
}

func interpretScore(score float64) string {
	switch {
	case score < 20:
		return "Very low - Text appears naturally written"
	case score < 40:
		return "Low - Mostly natural with minor AI indicators"
	case score < 60:
		return "Medium - Noticeable AI patterns present"
	case score < 80:
		return "High - Strong AI characteristics detected"
	default:
		return "Very high - Multiple strong AI patterns found"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
