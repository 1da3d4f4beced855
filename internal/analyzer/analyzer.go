package analyzer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zombar/readability-analyzer/internal/aidetect"
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
	"github.com/zombar/readability-analyzer/internal/sentences"
	"github.com/zombar/readability-analyzer/internal/textutil"
	"github.com/zombar/readability-analyzer/internal/tokenize"
)

const tracerName = "readability-analyzer"

// Options carries the per-call parameters shared by batch and compare
type Options struct {
	Sensitivity models.Sensitivity
	Count       int
	Threshold   *float64
	Metrics     []readability.Metric
}

// DefaultOptions mirrors the tool defaults
func DefaultOptions() Options {
	return Options{
		Sensitivity: models.SensitivityMedium,
		Count:       sentences.DefaultCount,
	}
}

// Analyzer runs the readability, sentence and AI pattern analyses over
// already validated text. It holds no per-call state and is safe to share.
type Analyzer struct {
	detector  *aidetect.Detector
	tokenizer tokenize.Tokenizer
	sentences *sentences.Analyzer
	tracer    trace.Tracer
}

// New creates an Analyzer
func New(detector *aidetect.Detector, tokenizer tokenize.Tokenizer) *Analyzer {
	return &Analyzer{
		detector:  detector,
		tokenizer: tokenizer,
		sentences: sentences.New(tokenizer),
		tracer:    otel.Tracer(tracerName),
	}
}

// Readability computes the Flesch scores plus the requested optional metrics
func (a *Analyzer) Readability(ctx context.Context, text string, metrics []readability.Metric) (models.ReadabilityResult, error) {
	_, span := a.tracer.Start(ctx, "analyzer.readability",
		trace.WithAttributes(attribute.Int("text.length", len(text))))
	defer span.End()

	segments := a.tokenizer.Sentences(text)
	if len(segments) == 0 {
		err := models.NoSentencesError("analyzer.Readability")
		recordError(span, err)
		return models.ReadabilityResult{}, err
	}

	result := readability.Report(segments, metrics)
	span.SetAttributes(
		attribute.Int("text.word_count", result.Statistics.WordCount),
		attribute.Float64("readability.fk_grade", result.FleschKincaidGrade),
	)
	return result, nil
}

// DetectAIPatterns scores text for machine-generated phrasing
func (a *Analyzer) DetectAIPatterns(ctx context.Context, text string, sensitivity models.Sensitivity) models.AIScoreResult {
	_, span := a.tracer.Start(ctx, "analyzer.detect_ai_patterns",
		trace.WithAttributes(
			attribute.Int("text.length", len(text)),
			attribute.String("ai.sensitivity", sensitivity.String()),
		))
	defer span.End()

	result := a.detector.Detect(text, sensitivity)
	span.SetAttributes(
		attribute.Float64("ai.score", result.Score),
		attribute.Int("ai.matches", len(result.Matches)),
	)
	return result
}

// RankHardSentences returns the hardest sentences of text
func (a *Analyzer) RankHardSentences(ctx context.Context, text string, count int, threshold *float64) (models.SentenceAnalysisResult, error) {
	_, span := a.tracer.Start(ctx, "analyzer.rank_hard_sentences",
		trace.WithAttributes(
			attribute.Int("text.length", len(text)),
			attribute.Int("sentences.count", count),
		))
	defer span.End()

	result, err := a.sentences.Analyze(text, count, threshold)
	if err != nil {
		recordError(span, err)
		return result, err
	}
	span.SetAttributes(attribute.Int("sentences.total", result.TotalSentences))
	return result, nil
}

// Batch runs the requested analyses over each text in order. A failure on one
// text is recorded on its item and does not stop the batch; only context
// cancellation aborts it.
func (a *Analyzer) Batch(ctx context.Context, texts []string, types []models.AnalysisType, opts Options) (models.BatchResult, error) {
	ctx, span := a.tracer.Start(ctx, "analyzer.batch",
		trace.WithAttributes(attribute.Int("batch.size", len(texts))))
	defer span.End()

	if len(types) == 0 {
		types = models.AllAnalysisTypes
	}

	result := models.BatchResult{
		Items:         make([]models.BatchItem, 0, len(texts)),
		AnalysisTypes: types,
	}

	var gradeSum, scoreSum float64
	var grades, scores int

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			recordError(span, err)
			return result, fmt.Errorf("batch interrupted at item %d: %w", i, err)
		}

		item := models.BatchItem{Index: i}
		for _, t := range types {
			var err error
			switch t {
			case models.AnalysisReadability:
				var r models.ReadabilityResult
				if r, err = a.Readability(ctx, text, opts.Metrics); err == nil {
					item.Readability = &r
					gradeSum += r.FleschKincaidGrade
					grades++
				}
			case models.AnalysisSentences:
				var s models.SentenceAnalysisResult
				if s, err = a.RankHardSentences(ctx, text, opts.Count, opts.Threshold); err == nil {
					item.Sentences = &s
				}
			case models.AnalysisAIPatterns:
				ai := a.DetectAIPatterns(ctx, text, opts.Sensitivity)
				item.AIPatterns = &ai
				scoreSum += ai.Score
				scores++
			}
			if err != nil {
				item.Error = models.ProcessingErrorResponse(err)
				break
			}
		}

		if item.Error != nil {
			result.Summary.Failed++
		}
		result.Items = append(result.Items, item)
	}

	result.Summary.Items = len(result.Items)
	if grades > 0 {
		avg := textutil.Round(gradeSum/float64(grades), 1)
		result.Summary.AverageGradeLevel = &avg
	}
	if scores > 0 {
		avg := textutil.Round(scoreSum/float64(scores), 1)
		result.Summary.AverageAIScore = &avg
	}

	span.SetAttributes(attribute.Int("batch.failed", result.Summary.Failed))
	return result, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
