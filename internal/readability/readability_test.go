package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"cat", 1},
		{"make", 1},
		{"table", 2},
		{"simple", 2},
		{"reading", 2},
		{"beautiful", 3},
		{"organization", 5},
		{"rhythm", 1},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.expected {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.expected)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	s := Measure([]string{"The cat sat on the mat.", "It was a beautiful day."})

	assert.Equal(t, 11, s.Words)
	assert.Equal(t, 2, s.Sentences)
	assert.Equal(t, 13, s.Syllables)
	assert.Equal(t, 1, s.Polysyllables)
	assert.Equal(t, 0, s.DifficultWords)
	assert.Equal(t, 35, s.Letters)
}

func TestMeasureSkipsEmptySentences(t *testing.T) {
	s := Measure([]string{"...", "Hello there."})
	assert.Equal(t, 1, s.Sentences)
	assert.Equal(t, 2, s.Words)
}

func TestFleschFormulas(t *testing.T) {
	// 10 words, 2 sentences, 15 syllables
	assert.Equal(t, 4.1, FleschKincaid(10, 2, 15))
	assert.Equal(t, 74.86, FleschReadingEase(10, 2, 15))

	assert.Equal(t, 0.0, FleschKincaid(0, 0, 0))
	assert.Equal(t, 0.0, FleschReadingEase(0, 1, 0))
}

func TestOptionalMetrics(t *testing.T) {
	sentences := []string{
		"The committee reviewed the preliminary documentation carefully.",
		"Several participants questioned the methodology.",
		"Nevertheless, the organization approved the recommendation unanimously.",
	}
	s := Measure(sentences)

	assert.Greater(t, s.SMOG(), 0.0)
	assert.Greater(t, s.ARI(), 0.0)
	assert.Greater(t, s.ColemanLiau(), 0.0)
	assert.Greater(t, s.GunningFog(), 0.0)
	assert.Greater(t, s.DaleChall(), 5.0)
	assert.NotZero(t, s.LinsearWrite())

	short := Measure([]string{"One sentence only."})
	assert.Equal(t, 0.0, short.SMOG())
}

func TestReport(t *testing.T) {
	sentences := []string{
		"The cat sat on the mat.",
		"It was a sunny day and the cat was happy.",
	}

	t.Run("all metrics by default", func(t *testing.T) {
		result := Report(sentences, nil)

		assert.Equal(t, 2, result.Statistics.SentenceCount)
		assert.Equal(t, 16, result.Statistics.WordCount)
		assert.Len(t, result.Metrics, len(AllMetrics))
		assert.Contains(t, result.Metrics, "smog_index")
		assert.Contains(t, result.Metrics, "dale_chall_readability_score")
		assert.Equal(t, "0.1 minutes", result.EstimatedReadingTime)
		assert.Equal(t, InterpretReadingEase(result.FleschReadingEase), result.Interpretation)
		assert.Equal(t, "Elementary school level", result.GradeLevelInterpretation)
	})

	t.Run("filtered metrics", func(t *testing.T) {
		result := Report(sentences, []Metric{MetricGunningFog})
		require.Len(t, result.Metrics, 1)
		assert.Contains(t, result.Metrics, "gunning_fog")
	})

	t.Run("no optional metrics", func(t *testing.T) {
		result := Report(sentences, []Metric{})
		assert.Nil(t, result.Metrics)
	})
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric(" SMOG ")
	require.NoError(t, err)
	assert.Equal(t, MetricSMOG, m)

	_, err = ParseMetric("flesch")
	assert.Error(t, err)
}

func TestInterpretations(t *testing.T) {
	tests := []struct {
		ease     float64
		expected string
	}{
		{10, "Very difficult"},
		{45, "Difficult"},
		{55, "Fairly difficult"},
		{65, "Standard"},
		{75, "Fairly easy"},
		{85, "Easy"},
		{95, "Very easy"},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasPrefix(InterpretReadingEase(tt.ease), tt.expected+" - "), "ease %v", tt.ease)
	}

	assert.Equal(t, "Middle school level", InterpretGradeLevel(7))
	assert.Equal(t, "High school level", InterpretGradeLevel(12.9))
	assert.Equal(t, "College level", InterpretGradeLevel(13))
	assert.Equal(t, "Graduate level", InterpretGradeLevel(18))
}
