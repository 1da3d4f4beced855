package sentences

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/tokenize"
)

// fixedTokenizer returns pre-split segments so tests do not depend on a model
type fixedTokenizer []string

func (f fixedTokenizer) Sentences(string) []string {
	return f
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("cat ", n))
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := New(tokenize.Rules{})

	_, err := a.Analyze("", 5, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoSentencesDetected))

	var perr *models.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, models.KindNoSentencesDetected, perr.Kind)

	_, err = a.Analyze("   \n\t", 5, nil)
	assert.True(t, errors.Is(err, models.ErrNoSentencesDetected))
}

func TestAnalyzeLongSentenceRanksFirst(t *testing.T) {
	punkt, err := tokenize.NewPunkt()
	require.NoError(t, err)

	tests := []struct {
		name      string
		tokenizer tokenize.Tokenizer
	}{
		{"rules", tokenize.Rules{}},
		{"punkt", punkt},
	}

	text := words(30) + ". " + words(5) + "."

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(tt.tokenizer).Analyze(text, 1, nil)
			require.NoError(t, err)

			assert.Equal(t, 2, result.TotalSentences)
			require.Len(t, result.Sentences, 1)
			top := result.Sentences[0]
			assert.Equal(t, 1, top.Position)
			assert.Equal(t, 30, top.WordCount)
			assert.Equal(t, []string{IssueLongSentence}, top.Issues)
			assert.Contains(t, top.IssueDetails, "Very long sentence (30 words)")
			assert.Nil(t, result.ExceedingCount)
		})
	}
}

func TestAnalyzeRankingTieBreak(t *testing.T) {
	a := New(fixedTokenizer{"the cat sat.", "a much harder sentence appears here eventually.", "the dog sat."})

	result, err := a.Analyze("ignored", 5, nil)
	require.NoError(t, err)
	require.Len(t, result.Sentences, 3)

	assert.Equal(t, 2, result.Sentences[0].Position)
	assert.Equal(t, result.Sentences[1].GradeLevel, result.Sentences[2].GradeLevel)
	assert.Equal(t, 1, result.Sentences[1].Position)
	assert.Equal(t, 3, result.Sentences[2].Position)
}

func TestAnalyzeThreshold(t *testing.T) {
	a := New(tokenize.Rules{})
	text := words(30) + ". " + words(5) + ". " + words(28) + "."

	threshold := 5.0
	result, err := a.Analyze(text, 1, &threshold)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalSentences)
	require.NotNil(t, result.ExceedingCount)
	assert.Equal(t, 2, *result.ExceedingCount)
	require.NotNil(t, result.ThresholdUsed)
	assert.Equal(t, 5.0, *result.ThresholdUsed)
	require.Len(t, result.Sentences, 1)
	assert.Equal(t, 1, result.Sentences[0].Position)

	high := 50.0
	result, err = a.Analyze(text, 5, &high)
	require.NoError(t, err)
	assert.Empty(t, result.Sentences)
	assert.NotNil(t, result.Sentences)
	assert.Equal(t, 0, *result.ExceedingCount)
}

func TestAnalyzeCountBounds(t *testing.T) {
	a := New(tokenize.Rules{})
	text := "One here. Two here. Three here."

	for _, count := range []int{0, 1, 2, 3, 10} {
		result, err := a.Analyze(text, count, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Sentences), result.TotalSentences)
		if count > 0 {
			assert.LessOrEqual(t, len(result.Sentences), count)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := New(tokenize.Rules{})
	text := "The committee, which met on Tuesday, was informed of the decision. " +
		"Short one. Nevertheless, organizational considerations necessitated reconsideration."

	first, err := a.Analyze(text, 5, nil)
	require.NoError(t, err)
	second, err := a.Analyze(text, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreIssues(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		issues   []string
	}{
		{"plain", "The cat sat on the mat.", []string{}},
		{"complex vocabulary", "Organizational interoperability necessitates standardization.", []string{IssueComplexVocabulary}},
		{"multiple clauses", "We came, we saw, we left.", []string{IssueMultipleClauses}},
		{"passive regular", "The report was reviewed by the board.", []string{IssuePassiveVoice}},
		{"passive irregular", "The letters were written in haste.", []string{IssuePassiveVoice}},
		{"not passive", "The door is open today.", []string{}},
		{"long", words(26) + ".", []string{IssueLongSentence}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Score(tt.sentence, 1)
			assert.Equal(t, tt.issues, s.Issues)
			assert.NotEmpty(t, s.IssueDetails)
		})
	}
}

func TestScoreDetails(t *testing.T) {
	s := Score(words(22)+".", 4)
	assert.Empty(t, s.Issues)
	assert.Equal(t, []string{"Long sentence (22 words)"}, s.IssueDetails)
	assert.Equal(t, 4, s.Position)

	plain := Score("The cat sat.", 1)
	assert.Equal(t, []string{"Generally clear, but could be simplified"}, plain.IssueDetails)
}
