// Package sentences ranks the hardest sentences of a text and explains what
// makes each one difficult.
package sentences

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
	"github.com/zombar/readability-analyzer/internal/textutil"
	"github.com/zombar/readability-analyzer/internal/tokenize"
)

// DefaultCount is the number of sentences returned when the caller gives none
const DefaultCount = 5

// Issue tags
const (
	IssueLongSentence      = "long_sentence"
	IssueComplexVocabulary = "complex_vocabulary"
	IssueMultipleClauses   = "multiple_clauses"
	IssuePassiveVoice      = "passive_voice"
)

const (
	longSentenceWords   = 25
	notableLengthWords  = 20
	complexSyllableRate = 2.0
	minClauses          = 3
	highGradeLevel      = 12
)

// Analyzer scores tokenizer segments and ranks them by grade level
type Analyzer struct {
	tokenizer tokenize.Tokenizer
}

// New creates an Analyzer on top of the given tokenizer
func New(tokenizer tokenize.Tokenizer) *Analyzer {
	return &Analyzer{tokenizer: tokenizer}
}

// Analyze returns up to count sentences ordered by grade level, hardest first,
// ties broken by position. When threshold is set only sentences at or above it
// are ranked and their number is reported in ExceedingCount.
func (a *Analyzer) Analyze(text string, count int, threshold *float64) (models.SentenceAnalysisResult, error) {
	segments := a.tokenizer.Sentences(text)
	if len(segments) == 0 {
		return models.SentenceAnalysisResult{}, models.NoSentencesError("sentences.Analyze")
	}
	if count <= 0 {
		count = DefaultCount
	}

	scored := make([]models.Sentence, len(segments))
	var gradeSum float64
	for i, seg := range segments {
		scored[i] = Score(seg, i+1)
		gradeSum += scored[i].GradeLevel
	}

	result := models.SentenceAnalysisResult{
		TotalSentences:    len(scored),
		AverageGradeLevel: textutil.Round(gradeSum/float64(len(scored)), 1),
	}

	ranked := scored
	if threshold != nil {
		ranked = make([]models.Sentence, 0, len(scored))
		for _, s := range scored {
			if s.GradeLevel >= *threshold {
				ranked = append(ranked, s)
			}
		}
		exceeding := len(ranked)
		t := *threshold
		result.ExceedingCount = &exceeding
		result.ThresholdUsed = &t
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].GradeLevel != ranked[j].GradeLevel {
			return ranked[i].GradeLevel > ranked[j].GradeLevel
		}
		return ranked[i].Position < ranked[j].Position
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	if ranked == nil {
		ranked = []models.Sentence{}
	}
	result.Sentences = ranked

	return result, nil
}

// Score measures one sentence and attributes its issues
func Score(text string, position int) models.Sentence {
	words := textutil.Words(text)
	syllables := readability.CountSyllables(words)

	s := models.Sentence{
		Text:          text,
		Position:      position,
		WordCount:     len(words),
		SyllableCount: syllables,
		GradeLevel:    readability.FleschKincaid(len(words), 1, syllables),
		Issues:        []string{},
		IssueDetails:  []string{},
	}

	tag := func(issue, detail string) {
		if issue != "" {
			s.Issues = append(s.Issues, issue)
		}
		s.IssueDetails = append(s.IssueDetails, detail)
	}

	switch {
	case s.WordCount > longSentenceWords:
		tag(IssueLongSentence, fmt.Sprintf("Very long sentence (%d words)", s.WordCount))
	case s.WordCount > notableLengthWords:
		tag("", fmt.Sprintf("Long sentence (%d words)", s.WordCount))
	}

	if s.WordCount > 0 {
		rate := float64(syllables) / float64(s.WordCount)
		if rate > complexSyllableRate {
			tag(IssueComplexVocabulary, fmt.Sprintf("Complex vocabulary (avg %.1f syllables/word)", rate))
		}
	}

	if n := countClauses(text); n >= minClauses {
		tag(IssueMultipleClauses, fmt.Sprintf("Multiple clauses (%d clauses)", n))
	}

	if hasPassiveVoice(words) {
		tag(IssuePassiveVoice, "Possible passive voice")
	}

	if len(s.IssueDetails) == 0 {
		if s.GradeLevel > highGradeLevel {
			s.IssueDetails = append(s.IssueDetails, "High reading level vocabulary")
		} else {
			s.IssueDetails = append(s.IssueDetails, "Generally clear, but could be simplified")
		}
	}

	return s
}

// countClauses counts the non-empty comma or semicolon delimited parts
func countClauses(text string) int {
	n := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' }) {
		if len(textutil.Words(part)) > 0 {
			n++
		}
	}
	return n
}
