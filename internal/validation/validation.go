// Package validation checks caller-supplied parameters and converts the open
// string inputs (sensitivity, metrics, analysis types) to closed enums.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
)

// Limits
const (
	MinTextLength = 1
	MaxTextLength = 500000
	MinCount      = 1
	MaxCount      = 100
	MinThreshold  = 0.0
	MaxThreshold  = 30.0
	MaxBatchSize  = 50
)

// Error is a parameter outside the accepted contract
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a validation Error
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Response is the error body for a validation failure
func Response(err error) *models.ErrorResponse {
	return &models.ErrorResponse{
		Error:   "Validation error",
		Message: err.Error(),
		Type:    string(models.KindValidation),
	}
}

// Text trims surrounding whitespace and checks length and content
func Text(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	n := utf8.RuneCountInString(cleaned)

	if n < MinTextLength {
		return "", newError("Text must be at least %d characters long", MinTextLength)
	}
	if n > MaxTextLength {
		return "", newError("Text exceeds maximum length of %s characters (got %s)",
			humanize.Comma(MaxTextLength), humanize.Comma(int64(n)))
	}
	if len(strings.Fields(cleaned)) == 0 {
		return "", newError("Text must contain at least one word")
	}
	return cleaned, nil
}

// Count checks the number of sentences to return
func Count(count int) (int, error) {
	if count < MinCount {
		return 0, newError("Count must be at least %d", MinCount)
	}
	if count > MaxCount {
		return 0, newError("Count cannot exceed %d", MaxCount)
	}
	return count, nil
}

// Threshold checks a grade-level threshold
func Threshold(threshold float64) (float64, error) {
	if threshold < MinThreshold {
		return 0, newError("Threshold must be at least %.1f", MinThreshold)
	}
	if threshold > MaxThreshold {
		return 0, newError("Threshold cannot exceed %.1f", MaxThreshold)
	}
	return threshold, nil
}

// Sensitivity parses low, medium or high, ignoring case and surrounding blanks
func Sensitivity(s string) (models.Sensitivity, error) {
	v, err := models.ParseSensitivity(s)
	if err != nil {
		return 0, newError("Sensitivity must be one of high, low, medium")
	}
	return v, nil
}

// the two Flesch scores are always reported, so naming them selects nothing extra
var coreMetrics = map[string]bool{"flesch_kincaid": true, "flesch_ease": true}

// Metrics converts requested metric names. A nil list means every metric.
func Metrics(names []string) ([]readability.Metric, error) {
	if names == nil {
		return nil, nil
	}
	if len(names) == 0 {
		return nil, newError("Metrics list cannot be empty")
	}

	out := []readability.Metric{}
	seen := make(map[readability.Metric]bool)
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if coreMetrics[key] {
			continue
		}
		m, err := readability.ParseMetric(key)
		if err != nil {
			return nil, newError("Invalid metric '%s'. Valid metrics: %s", key, strings.Join(validMetricNames(), ", "))
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func validMetricNames() []string {
	names := []string{"flesch_kincaid", "flesch_ease"}
	for _, m := range readability.AllMetrics {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

// AnalysisTypes converts batch analysis type names. An empty list means all.
func AnalysisTypes(names []string) ([]models.AnalysisType, error) {
	if len(names) == 0 {
		return models.AllAnalysisTypes, nil
	}

	out := []models.AnalysisType{}
	seen := make(map[models.AnalysisType]bool)
	for _, name := range names {
		t := models.AnalysisType(strings.ToLower(strings.TrimSpace(name)))
		switch t {
		case models.AnalysisReadability, models.AnalysisSentences, models.AnalysisAIPatterns:
		default:
			return nil, newError("Invalid analysis type '%s'. Valid types: ai_patterns, readability, sentences", name)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// Batch validates every text of a batch, returning the cleaned texts
func Batch(texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, newError("Batch must contain at least one text")
	}
	if len(texts) > MaxBatchSize {
		return nil, newError("Batch cannot exceed %d texts (got %d)", MaxBatchSize, len(texts))
	}

	cleaned := make([]string, len(texts))
	for i, text := range texts {
		c, err := Text(text)
		if err != nil {
			return nil, newError("Text %d: %s", i+1, err.Error())
		}
		cleaned[i] = c
	}
	return cleaned, nil
}
