package models

import (
	"fmt"
	"strings"
	"time"
)

// Sensitivity controls which pattern categories the AI detector activates
type Sensitivity int

const (
	SensitivityLow Sensitivity = iota
	SensitivityMedium
	SensitivityHigh
)

func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "low"
	case SensitivityMedium:
		return "medium"
	case SensitivityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseSensitivity parses low, medium or high, ignoring case and surrounding blanks
func ParseSensitivity(name string) (Sensitivity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return SensitivityLow, nil
	case "medium":
		return SensitivityMedium, nil
	case "high":
		return SensitivityHigh, nil
	}
	return 0, fmt.Errorf("unknown sensitivity %q", name)
}

// MarshalText encodes the sensitivity as its lowercase name
func (s Sensitivity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a sensitivity name
func (s *Sensitivity) UnmarshalText(text []byte) error {
	v, err := ParseSensitivity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AnalysisType names one analysis a batch item can run
type AnalysisType string

const (
	AnalysisReadability AnalysisType = "readability"
	AnalysisSentences   AnalysisType = "sentences"
	AnalysisAIPatterns  AnalysisType = "ai_patterns"
)

// AllAnalysisTypes is the default set used when a caller names none
var AllAnalysisTypes = []AnalysisType{AnalysisReadability, AnalysisSentences, AnalysisAIPatterns}

// Match is a single pattern hit in normalized text
type Match struct {
	Phrase     string  `json:"phrase"`
	Category   string  `json:"category"`
	Rule       string  `json:"rule,omitempty"` // structural rule id; empty for literal phrases
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Context    string  `json:"context"`
}

// PatternSummary condenses the match list
type PatternSummary struct {
	TotalPatterns       int    `json:"total_patterns"`
	CategoriesTriggered int    `json:"categories_triggered"`
	MostCommonCategory  string `json:"most_common_category,omitempty"`
}

// AIScoreResult is the outcome of AI pattern detection
type AIScoreResult struct {
	Score           float64        `json:"ai_likelihood_score"` // 0-100, higher means more AI-like
	Interpretation  string         `json:"interpretation"`
	Matches         []Match        `json:"matches"`
	CategoryCounts  map[string]int `json:"category_counts"`
	PatternSummary  PatternSummary `json:"pattern_summary"`
	Sensitivity     Sensitivity    `json:"sensitivity_used"`
	Recommendations []string       `json:"recommendations"`
	WordCount       int            `json:"word_count"`
}

// Sentence is one scored tokenizer segment
type Sentence struct {
	Text          string   `json:"sentence"`
	Position      int      `json:"position"` // 1-indexed
	WordCount     int      `json:"word_count"`
	SyllableCount int      `json:"syllable_count"`
	GradeLevel    float64  `json:"grade_level"`
	Issues        []string `json:"issues"`
	IssueDetails  []string `json:"issue_details"`
}

// SentenceAnalysisResult holds the ranked difficult sentences
type SentenceAnalysisResult struct {
	Sentences         []Sentence `json:"difficult_sentences"`
	TotalSentences    int        `json:"total_sentences"`
	ExceedingCount    *int       `json:"exceeding_threshold,omitempty"`
	ThresholdUsed     *float64   `json:"threshold_used,omitempty"`
	AverageGradeLevel float64    `json:"average_grade_level"`
}

// TextStatistics contains counts used by the readability formulas
type TextStatistics struct {
	WordCount            int     `json:"word_count"`
	SentenceCount        int     `json:"sentence_count"`
	SyllableCount        int     `json:"syllable_count"`
	AvgWordsPerSentence  float64 `json:"avg_words_per_sentence"`
	ComplexWordCount     int     `json:"complex_word_count"`
	DifficultWordCount   int     `json:"difficult_word_count"`
	CharacterCount       int     `json:"character_count"`
	EstimatedReadMinutes float64 `json:"estimated_reading_minutes"`
}

// ReadabilityResult is the outcome of analyze_text
type ReadabilityResult struct {
	FleschKincaidGrade       float64            `json:"flesch_kincaid_grade"`
	FleschReadingEase        float64            `json:"flesch_reading_ease"`
	Interpretation           string             `json:"interpretation"`
	GradeLevelInterpretation string             `json:"grade_level_interpretation"`
	Metrics                  map[string]float64 `json:"metrics,omitempty"`
	Statistics               TextStatistics     `json:"statistics"`
	EstimatedReadingTime     string             `json:"estimated_reading_time"`
}

// BatchItem is the result for one text in a batch
type BatchItem struct {
	Index       int                     `json:"index"`
	Readability *ReadabilityResult      `json:"readability,omitempty"`
	Sentences   *SentenceAnalysisResult `json:"sentences,omitempty"`
	AIPatterns  *AIScoreResult          `json:"ai_patterns,omitempty"`
	Error       *ErrorResponse          `json:"error,omitempty"`
}

// BatchSummary aggregates a batch
type BatchSummary struct {
	Items             int      `json:"items"`
	Failed            int      `json:"failed"`
	AverageGradeLevel *float64 `json:"average_grade_level,omitempty"`
	AverageAIScore    *float64 `json:"average_ai_score,omitempty"`
}

// BatchResult is the outcome of batch_analyze
type BatchResult struct {
	Items         []BatchItem    `json:"items"`
	Summary       BatchSummary   `json:"summary"`
	AnalysisTypes []AnalysisType `json:"analysis_types"`
}

// Verdict classifies a before/after comparison
type Verdict string

const (
	VerdictImproved  Verdict = "improved"
	VerdictRegressed Verdict = "regressed"
	VerdictMixed     Verdict = "mixed"
	VerdictUnchanged Verdict = "unchanged"
)

// Delta is a single metric movement between two texts
type Delta struct {
	Metric string  `json:"metric"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Change float64 `json:"change"`
}

// ComparisonResult is the outcome of compare_texts
type ComparisonResult struct {
	Verdict      Verdict `json:"verdict"`
	Improvements []Delta `json:"improvements"`
	Regressions  []Delta `json:"regressions"`
}

// Run is a history record of one tool invocation. It never carries the analyzed text.
type Run struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	TextHash   string    `json:"text_hash"`
	WordCount  int       `json:"word_count"`
	Score      *float64  `json:"score,omitempty"` // tool headline number (AI score, FK grade, ...)
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
