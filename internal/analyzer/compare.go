package analyzer

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

// Compare metric names
const (
	MetricGradeLevel        = "flesch_kincaid_grade"
	MetricReadingEase       = "flesch_reading_ease"
	MetricAIScore           = "ai_likelihood_score"
	MetricHardSentences     = "hard_sentence_count"
	MetricAvgSentenceLength = "avg_words_per_sentence"
)

const (
	// HardSentenceThreshold is the grade level a sentence must reach to count as hard
	HardSentenceThreshold = 10.0
	// CompareTolerance is the smallest change treated as movement
	CompareTolerance = 0.05
)

type snapshot struct {
	grade         float64
	ease          float64
	aiScore       float64
	hardSentences int
	avgLength     float64
}

// Compare analyzes a before and after version of a text and classifies the
// change. Lower grade, AI score, hard sentence count and sentence length are
// improvements, as is a higher reading ease.
func (a *Analyzer) Compare(ctx context.Context, before, after string, opts Options) (models.ComparisonResult, error) {
	ctx, span := a.tracer.Start(ctx, "analyzer.compare",
		trace.WithAttributes(
			attribute.Int("before.length", len(before)),
			attribute.Int("after.length", len(after)),
		))
	defer span.End()

	b, err := a.snapshot(ctx, before, opts)
	if err != nil {
		recordError(span, err)
		return models.ComparisonResult{}, fmt.Errorf("failed to analyze original text: %w", err)
	}
	af, err := a.snapshot(ctx, after, opts)
	if err != nil {
		recordError(span, err)
		return models.ComparisonResult{}, fmt.Errorf("failed to analyze revised text: %w", err)
	}

	result := models.ComparisonResult{
		Improvements: []models.Delta{},
		Regressions:  []models.Delta{},
	}

	classify := func(metric string, before, after float64, lowerIsBetter bool) {
		change := after - before
		if math.Abs(change) < CompareTolerance {
			return
		}
		d := models.Delta{
			Metric: metric,
			Before: before,
			After:  after,
			Change: textutil.Round(change, 2),
		}
		if (change < 0) == lowerIsBetter {
			result.Improvements = append(result.Improvements, d)
		} else {
			result.Regressions = append(result.Regressions, d)
		}
	}

	classify(MetricGradeLevel, b.grade, af.grade, true)
	classify(MetricReadingEase, b.ease, af.ease, false)
	classify(MetricAIScore, b.aiScore, af.aiScore, true)
	classify(MetricHardSentences, float64(b.hardSentences), float64(af.hardSentences), true)
	classify(MetricAvgSentenceLength, b.avgLength, af.avgLength, true)

	switch {
	case len(result.Improvements) > 0 && len(result.Regressions) == 0:
		result.Verdict = models.VerdictImproved
	case len(result.Regressions) > 0 && len(result.Improvements) == 0:
		result.Verdict = models.VerdictRegressed
	case len(result.Improvements) > 0:
		result.Verdict = models.VerdictMixed
	default:
		result.Verdict = models.VerdictUnchanged
	}

	span.SetAttributes(attribute.String("compare.verdict", string(result.Verdict)))
	return result, nil
}

func (a *Analyzer) snapshot(ctx context.Context, text string, opts Options) (snapshot, error) {
	r, err := a.Readability(ctx, text, []readability.Metric{})
	if err != nil {
		return snapshot{}, err
	}

	threshold := HardSentenceThreshold
	s, err := a.RankHardSentences(ctx, text, 1, &threshold)
	if err != nil {
		return snapshot{}, err
	}

	ai := a.DetectAIPatterns(ctx, text, opts.Sensitivity)

	return snapshot{
		grade:         r.FleschKincaidGrade,
		ease:          r.FleschReadingEase,
		aiScore:       ai.Score,
		hardSentences: *s.ExceedingCount,
		avgLength:     r.Statistics.AvgWordsPerSentence,
	}, nil
}
