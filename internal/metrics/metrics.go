// Package metrics exposes Prometheus instruments for tool calls.
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors registered for one service
type Metrics struct {
	reg prometheus.Registerer

	ToolRequests    *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec
	AIScore         prometheus.Histogram
	PatternMatches  *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	SentencesRanked prometheus.Counter
}

// New registers the service collectors on reg. Passing a fresh registry keeps
// tests isolated from the global default.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ToolRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_requests_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "status"}),
		ToolDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Time spent computing a tool result.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"tool"}),
		AIScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_likelihood_score",
			Help:      "Distribution of AI likelihood scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		PatternMatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pattern_matches_total",
			Help:      "AI pattern matches by category.",
		}, []string{"category"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
		SentencesRanked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_ranked_total",
			Help:      "Sentences scored by the difficulty ranker.",
		}),
	}
}

// ObserveTool records one tool call
func (m *Metrics) ObserveTool(tool, status string, elapsed time.Duration) {
	m.ToolRequests.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveAIScore records a detector result
func (m *Metrics) ObserveAIScore(score float64, categoryCounts map[string]int) {
	m.AIScore.Observe(score)
	for category, n := range categoryCounts {
		if n > 0 {
			m.PatternMatches.WithLabelValues(category).Add(float64(n))
		}
	}
}

// ObserveCache records a cache hit or miss
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RegisterDB exports connection pool stats for the history database
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	return m.reg.Register(collectors.NewDBStatsCollector(db, name))
}
