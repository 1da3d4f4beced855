package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/readability-analyzer/internal/models"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"terminal", FormatTerminal, false},
		{"JSON", FormatJSON, false},
		{"", FormatTerminal, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)

	result := models.AIScoreResult{Score: 42.5, Sensitivity: models.SensitivityHigh, Matches: []models.Match{}}
	require.NoError(t, r.Render(result))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 42.5, decoded["ai_likelihood_score"])
	assert.Equal(t, "high", decoded["sensitivity_used"])
	assert.Contains(t, buf.String(), "\n  \"")
}

func TestRenderReadability(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTerminal)

	require.NoError(t, r.Render(models.ReadabilityResult{
		FleschKincaidGrade:       8.2,
		FleschReadingEase:        65.31,
		Interpretation:           "Standard",
		GradeLevelInterpretation: "Middle school",
		Metrics:                  map[string]float64{"smog_index": 9.1, "gunning_fog": 10.4},
		Statistics:               models.TextStatistics{WordCount: 12345, SentenceCount: 600, SyllableCount: 18000},
		EstimatedReadingTime:     "61.7 minutes",
	}))

	out := buf.String()
	assert.Contains(t, out, "Flesch-Kincaid grade")
	assert.Contains(t, out, "8.2  Middle school")
	assert.Contains(t, out, "65.31  Standard")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "61.7 minutes")
	// optional metrics sorted by key
	assert.Less(t, strings.Index(out, "gunning fog"), strings.Index(out, "smog index"))
	assert.NotContains(t, out, "\x1b[", "no escape codes outside a terminal")
}

func TestRenderSentences(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTerminal)

	exceeding := 1
	threshold := 12.0
	require.NoError(t, r.Render(models.SentenceAnalysisResult{
		Sentences: []models.Sentence{{
			Text:         "This sentence, which is long, keeps going; it never stops.",
			Position:     3,
			WordCount:    11,
			GradeLevel:   14.2,
			Issues:       []string{"multiple_clauses"},
			IssueDetails: []string{"Multiple clauses (3 clauses)"},
		}},
		TotalSentences:    1200,
		AverageGradeLevel: 9.4,
		ExceedingCount:    &exceeding,
		ThresholdUsed:     &threshold,
	}))

	out := buf.String()
	assert.Contains(t, out, "Hardest sentences (1 of 1,200)")
	assert.Contains(t, out, "3rd sentence, grade 14.2, 11 words")
	assert.Contains(t, out, "This sentence, which is long")
	assert.Contains(t, out, "- Multiple clauses (3 clauses)")
	assert.Contains(t, out, "At or above grade 12.0")
}

func TestRenderEmptySentences(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTerminal).Render(models.SentenceAnalysisResult{Sentences: []models.Sentence{}, TotalSentences: 2}))
	assert.Contains(t, buf.String(), "No sentences to show")
}

func TestRenderAIScore(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTerminal)

	require.NoError(t, r.Render(models.AIScoreResult{
		Score:          55,
		Interpretation: "Medium - Noticeable AI patterns present",
		Matches: []models.Match{{
			Phrase:   "delve into",
			Category: "dead_giveaway",
			Context:  strings.Repeat("x", 200),
		}},
		PatternSummary:  models.PatternSummary{TotalPatterns: 1, CategoriesTriggered: 1, MostCommonCategory: "dead_giveaway"},
		Sensitivity:     models.SensitivityMedium,
		Recommendations: []string{"Replace flagged idioms with concrete phrasing"},
		WordCount:       20,
	}))

	out := buf.String()
	assert.Contains(t, out, "55.0/100")
	assert.Contains(t, out, `"delve into" (dead giveaway)`)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 100))
	assert.Contains(t, out, "-> Replace flagged idioms with concrete phrasing")
}

func TestRenderBatchAndComparison(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTerminal)

	avg := 31.5
	require.NoError(t, r.Render(models.BatchResult{
		Items: []models.BatchItem{
			{Index: 0, AIPatterns: &models.AIScoreResult{Score: 31.5}},
			{Index: 1, Error: &models.ErrorResponse{Message: "text contains no analyzable sentences"}},
		},
		Summary: models.BatchSummary{Items: 2, Failed: 1, AverageAIScore: &avg},
	}))
	out := buf.String()
	assert.Contains(t, out, "Batch of 2 texts")
	assert.Contains(t, out, "#1  AI 31.5")
	assert.Contains(t, out, "#2  error: text contains no analyzable sentences")

	buf.Reset()
	require.NoError(t, r.Render(models.ComparisonResult{
		Verdict:      models.VerdictMixed,
		Improvements: []models.Delta{{Metric: "flesch_kincaid_grade", Before: 12, After: 8, Change: -4}},
		Regressions:  []models.Delta{{Metric: "ai_likelihood_score", Before: 0, After: 12.5, Change: 12.5}},
	}))
	out = buf.String()
	assert.Contains(t, out, "Verdict: mixed")
	assert.Contains(t, out, "12.00 -> 8.00  -4.00")
	assert.Contains(t, out, "+12.50")
}

func TestRenderUnknownType(t *testing.T) {
	err := New(&bytes.Buffer{}, FormatTerminal).Render(struct{}{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "héll...", truncate("héllo wörld", 7))
}
