package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"trims", "  hello world  ", "hello world", ""},
		{"empty", "", "", "at least 1 characters"},
		{"whitespace only", " \n\t ", "", "at least 1 characters"},
		{"too long", strings.Repeat("a", MaxTextLength+1), "", "500,000 characters (got 500,001)"},
		{"max length", strings.Repeat("a", MaxTextLength), strings.Repeat("a", MaxTextLength), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountAndThreshold(t *testing.T) {
	for _, c := range []int{1, 50, 100} {
		_, err := Count(c)
		assert.NoError(t, err, "count %d", c)
	}
	for _, c := range []int{0, -1, 101} {
		_, err := Count(c)
		assert.True(t, IsValidationError(err), "count %d", c)
	}

	for _, th := range []float64{0, 10.5, 30} {
		_, err := Threshold(th)
		assert.NoError(t, err, "threshold %v", th)
	}
	for _, th := range []float64{-0.1, 30.1} {
		_, err := Threshold(th)
		assert.True(t, IsValidationError(err), "threshold %v", th)
	}
}

func TestSensitivity(t *testing.T) {
	tests := []struct {
		input string
		want  models.Sensitivity
		ok    bool
	}{
		{"low", models.SensitivityLow, true},
		{" Medium ", models.SensitivityMedium, true},
		{"HIGH", models.SensitivityHigh, true},
		{"extreme", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Sensitivity(tt.input)
			if !tt.ok {
				assert.EqualError(t, err, "Sensitivity must be one of high, low, medium")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetrics(t *testing.T) {
	all, err := Metrics(nil)
	require.NoError(t, err)
	assert.Nil(t, all)

	_, err = Metrics([]string{})
	assert.EqualError(t, err, "Metrics list cannot be empty")

	got, err := Metrics([]string{"SMOG", "flesch_kincaid", "smog", "dale_chall"})
	require.NoError(t, err)
	assert.Equal(t, []readability.Metric{readability.MetricSMOG, readability.MetricDaleChall}, got)

	core, err := Metrics([]string{"flesch_ease"})
	require.NoError(t, err)
	assert.NotNil(t, core)
	assert.Empty(t, core)

	_, err = Metrics([]string{"bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid metric 'bogus'")
	assert.Contains(t, err.Error(), "ari, coleman_liau, dale_chall")
}

func TestAnalysisTypes(t *testing.T) {
	got, err := AnalysisTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, models.AllAnalysisTypes, got)

	got, err = AnalysisTypes([]string{"AI_Patterns", "readability", "ai_patterns"})
	require.NoError(t, err)
	assert.Equal(t, []models.AnalysisType{models.AnalysisAIPatterns, models.AnalysisReadability}, got)

	_, err = AnalysisTypes([]string{"grammar"})
	assert.True(t, IsValidationError(err))
}

func TestBatch(t *testing.T) {
	got, err := Batch([]string{" one ", "two"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)

	_, err = Batch(nil)
	assert.True(t, IsValidationError(err))

	_, err = Batch([]string{"ok", "  "})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Text 2:"))

	big := make([]string, MaxBatchSize+1)
	for i := range big {
		big[i] = fmt.Sprintf("text %d", i)
	}
	_, err = Batch(big)
	assert.True(t, IsValidationError(err))
}

func TestResponse(t *testing.T) {
	resp := Response(&Error{Message: "bad"})
	assert.Equal(t, "Validation error", resp.Error)
	assert.Equal(t, "bad", resp.Message)
	assert.Equal(t, "validation_error", resp.Type)
}
