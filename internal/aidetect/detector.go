package aidetect

import (
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

// Detector runs the matcher and score calculator over raw text
type Detector struct {
	catalog *Catalog
	cfg     ScoreConfig
}

// NewDetector creates a Detector sharing the given catalog. Non-positive
// thresholds in cfg fall back to DefaultScoreConfig; bonuses are taken as
// given, so a zero bonus disables it.
func NewDetector(catalog *Catalog, cfg ScoreConfig) *Detector {
	def := DefaultScoreConfig()
	if cfg.ShortTextWords <= 0 {
		cfg.ShortTextWords = def.ShortTextWords
	}
	if cfg.OrdinalMinMarkers <= 0 {
		cfg.OrdinalMinMarkers = def.OrdinalMinMarkers
	}
	if cfg.ContrastMinConstructs <= 0 {
		cfg.ContrastMinConstructs = def.ContrastMinConstructs
	}
	return &Detector{catalog: catalog, cfg: cfg}
}

// Catalog returns the shared catalog
func (d *Detector) Catalog() *Catalog {
	return d.catalog
}

// Detect normalizes text, matches it and scores the result
func (d *Detector) Detect(text string, sensitivity models.Sensitivity) models.AIScoreResult {
	normalized := textutil.Normalize(text)
	matches := d.catalog.Match(normalized, sensitivity)
	return d.Score(matches, textutil.WordCount(normalized), sensitivity)
}
