// Package readability implements the standard readability formulas
// (Flesch-Kincaid, SMOG, ARI, Coleman-Liau, Linsear Write, Gunning Fog and
// Dale-Chall) over pre-split sentences.
package readability

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/textutil"
)

// WordsPerMinute is the reading speed used for time estimates
const WordsPerMinute = 200

// Metric names an optional readability formula
type Metric string

const (
	MetricSMOG        Metric = "smog"
	MetricARI         Metric = "ari"
	MetricColemanLiau Metric = "coleman_liau"
	MetricLinsear     Metric = "linsear"
	MetricGunningFog  Metric = "gunning_fog"
	MetricDaleChall   Metric = "dale_chall"
)

// AllMetrics lists every optional formula in report order
var AllMetrics = []Metric{MetricSMOG, MetricARI, MetricColemanLiau, MetricLinsear, MetricGunningFog, MetricDaleChall}

// ResultKey is the name the metric is reported under
func (m Metric) ResultKey() string {
	switch m {
	case MetricSMOG:
		return "smog_index"
	case MetricARI:
		return "automated_readability_index"
	case MetricColemanLiau:
		return "coleman_liau_index"
	case MetricLinsear:
		return "linsear_write_formula"
	case MetricGunningFog:
		return "gunning_fog"
	case MetricDaleChall:
		return "dale_chall_readability_score"
	}
	return string(m)
}

// ParseMetric converts a metric name to a Metric
func ParseMetric(name string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllMetrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", name)
}

var easyWords = getEasyWords()

// Stats holds the counts every formula is computed from
type Stats struct {
	Words          int
	Sentences      int
	Syllables      int
	Letters        int
	Characters     int
	Polysyllables  int // words with three or more syllables
	DifficultWords int

	// first 100 words, for Linsear Write
	sampleEasy      int
	sampleHard      int
	sampleSentences int
}

// Measure counts words, syllables and letters across the given sentences
func Measure(sentences []string) Stats {
	var s Stats
	for _, sentence := range sentences {
		words := textutil.Words(sentence)
		if len(words) == 0 {
			continue
		}
		s.Sentences++
		if s.Words < 100 {
			s.sampleSentences++
		}

		for _, w := range words {
			syl := Syllables(w)
			s.Syllables += syl
			if syl >= 3 {
				s.Polysyllables++
			}
			if syl >= 2 && !easyWords[w] {
				s.DifficultWords++
			}
			if s.Words < 100 {
				if syl >= 3 {
					s.sampleHard++
				} else {
					s.sampleEasy++
				}
			}
			s.Words++
		}

		s.Letters += textutil.Letters(sentence)
		for _, r := range sentence {
			if !unicode.IsSpace(r) {
				s.Characters++
			}
		}
	}
	return s
}

// FleschKincaid is the Flesch-Kincaid grade level for raw counts
func FleschKincaid(words, sentences, syllables int) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	asl := float64(words) / float64(sentences)
	asw := float64(syllables) / float64(words)
	return textutil.Round(0.39*asl+11.8*asw-15.59, 1)
}

// FleschReadingEase is the Flesch reading ease score for raw counts
func FleschReadingEase(words, sentences, syllables int) float64 {
	if words == 0 || sentences == 0 {
		return 0
	}
	asl := float64(words) / float64(sentences)
	asw := float64(syllables) / float64(words)
	return textutil.Round(206.835-1.015*asl-84.6*asw, 2)
}

func (s Stats) avgSentenceLength() float64 {
	if s.Sentences == 0 {
		return 0
	}
	return float64(s.Words) / float64(s.Sentences)
}

// FleschKincaidGrade of the measured text
func (s Stats) FleschKincaidGrade() float64 {
	return FleschKincaid(s.Words, s.Sentences, s.Syllables)
}

// FleschReadingEase of the measured text
func (s Stats) FleschReadingEase() float64 {
	return FleschReadingEase(s.Words, s.Sentences, s.Syllables)
}

// SMOG needs at least three sentences and reports 0 below that
func (s Stats) SMOG() float64 {
	if s.Sentences < 3 {
		return 0
	}
	return textutil.Round(1.043*math.Sqrt(float64(s.Polysyllables)*30/float64(s.Sentences))+3.1291, 1)
}

// ARI is the Automated Readability Index
func (s Stats) ARI() float64 {
	if s.Words == 0 {
		return 0
	}
	return textutil.Round(4.71*float64(s.Letters)/float64(s.Words)+0.5*s.avgSentenceLength()-21.43, 1)
}

// ColemanLiau is the Coleman-Liau index
func (s Stats) ColemanLiau() float64 {
	if s.Words == 0 {
		return 0
	}
	l := float64(s.Letters) / float64(s.Words) * 100
	sen := float64(s.Sentences) / float64(s.Words) * 100
	return textutil.Round(0.0588*l-0.296*sen-15.8, 2)
}

// LinsearWrite scores the first 100 words
func (s Stats) LinsearWrite() float64 {
	if s.sampleSentences == 0 {
		return 0
	}
	r := float64(s.sampleEasy+3*s.sampleHard) / float64(s.sampleSentences)
	if r > 20 {
		return textutil.Round(r/2, 1)
	}
	return textutil.Round((r-2)/2, 1)
}

// GunningFog is the Gunning fog index
func (s Stats) GunningFog() float64 {
	if s.Words == 0 {
		return 0
	}
	complexPct := float64(s.Polysyllables) / float64(s.Words) * 100
	return textutil.Round(0.4*(s.avgSentenceLength()+complexPct), 2)
}

// DaleChall is the new Dale-Chall score; difficult words are those of two or
// more syllables missing from the familiar-word list.
func (s Stats) DaleChall() float64 {
	if s.Words == 0 {
		return 0
	}
	pct := float64(s.DifficultWords) / float64(s.Words) * 100
	score := 0.1579*pct + 0.0496*s.avgSentenceLength()
	if pct > 5 {
		score += 3.6365
	}
	return textutil.Round(score, 2)
}

// Value returns the score of an optional metric
func (s Stats) Value(m Metric) float64 {
	switch m {
	case MetricSMOG:
		return s.SMOG()
	case MetricARI:
		return s.ARI()
	case MetricColemanLiau:
		return s.ColemanLiau()
	case MetricLinsear:
		return s.LinsearWrite()
	case MetricGunningFog:
		return s.GunningFog()
	case MetricDaleChall:
		return s.DaleChall()
	}
	return 0
}

// Report builds the full readability result. A nil metrics slice selects
// every optional formula; an empty one selects none.
func Report(sentences []string, metrics []Metric) models.ReadabilityResult {
	s := Measure(sentences)
	if metrics == nil {
		metrics = AllMetrics
	}

	grade := s.FleschKincaidGrade()
	ease := s.FleschReadingEase()
	minutes := float64(s.Words) / WordsPerMinute

	result := models.ReadabilityResult{
		FleschKincaidGrade:       grade,
		FleschReadingEase:        ease,
		Interpretation:           InterpretReadingEase(ease),
		GradeLevelInterpretation: InterpretGradeLevel(grade),
		Statistics: models.TextStatistics{
			WordCount:            s.Words,
			SentenceCount:        s.Sentences,
			SyllableCount:        s.Syllables,
			AvgWordsPerSentence:  textutil.Round(s.avgSentenceLength(), 2),
			ComplexWordCount:     s.Polysyllables,
			DifficultWordCount:   s.DifficultWords,
			CharacterCount:       s.Characters,
			EstimatedReadMinutes: textutil.Round(minutes, 1),
		},
		EstimatedReadingTime: fmt.Sprintf("%.1f minutes", minutes),
	}

	if len(metrics) > 0 {
		result.Metrics = make(map[string]float64, len(metrics))
		for _, m := range metrics {
			result.Metrics[m.ResultKey()] = s.Value(m)
		}
	}

	return result
}

// InterpretReadingEase describes a Flesch reading ease score
func InterpretReadingEase(score float64) string {
	switch {
	case score < 30:
		return "Very difficult - Best understood by university graduates"
	case score < 50:
		return "Difficult - Best understood by college students"
	case score < 60:
		return "Fairly difficult - 10th to 12th grade level"
	case score < 70:
		return "Standard - 8th & 9th grade level"
	case score < 80:
		return "Fairly easy - 7th grade level"
	case score < 90:
		return "Easy - 6th grade level"
	default:
		return "Very easy - 5th grade level or below"
	}
}

// InterpretGradeLevel describes a US school grade level
func InterpretGradeLevel(level float64) string {
	switch {
	case level < 6:
		return "Elementary school level"
	case level < 9:
		return "Middle school level"
	case level < 13:
		return "High school level"
	case level < 16:
		return "College level"
	default:
		return "Graduate level"
	}
}
