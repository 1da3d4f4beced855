package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/zombar/readability-analyzer/internal/analyzer"
	"github.com/zombar/readability-analyzer/internal/cache"
	"github.com/zombar/readability-analyzer/internal/database"
	"github.com/zombar/readability-analyzer/internal/metrics"
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/version"
)

// HistoryStore records tool runs. *database.DB satisfies it.
type HistoryStore interface {
	SaveRun(ctx context.Context, run *models.Run) error
	ListRuns(ctx context.Context, tool string, limit, offset int) ([]*models.Run, error)
	Stats(ctx context.Context) ([]database.ToolStats, error)
}

// Deps are the collaborators of the HTTP surface. Only Analyzer and Metrics
// are required; a nil Cache disables caching and a nil History disables the
// run log.
type Deps struct {
	Analyzer *analyzer.Analyzer
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Cache    cache.Cache
	History  HistoryStore
	Logger   *slog.Logger

	AllowedOrigins     []string
	DefaultSensitivity string
	DefaultCount       int
}

// Handler handles HTTP requests
type Handler struct {
	analyzer *analyzer.Analyzer
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	cache    cache.Cache
	history  HistoryStore
	logger   *slog.Logger

	defaultSensitivity string
	defaultCount       int

	mux *http.ServeMux
}

// NewHandler creates the API handler with CORS support and metrics
func NewHandler(deps Deps) http.Handler {
	h := newHandler(deps)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(h.mux)
}

func newHandler(deps Deps) *Handler {
	h := &Handler{
		analyzer:           deps.Analyzer,
		metrics:            deps.Metrics,
		gatherer:           deps.Gatherer,
		cache:              deps.Cache,
		history:            deps.History,
		logger:             deps.Logger,
		defaultSensitivity: deps.DefaultSensitivity,
		defaultCount:       deps.DefaultCount,
		mux:                http.NewServeMux(),
	}
	if h.cache == nil {
		h.cache = cache.Nop{}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.defaultSensitivity == "" {
		h.defaultSensitivity = "medium"
	}
	if h.defaultCount == 0 {
		h.defaultCount = 5
	}

	h.setupRoutes()
	return h
}

// setupRoutes configures all API routes
func (h *Handler) setupRoutes() {
	if h.gatherer != nil {
		h.mux.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	} else {
		h.mux.Handle("/metrics", promhttp.Handler())
	}
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.HandleFunc("/api/tools", h.handleRegistry)
	h.mux.HandleFunc("/api/tools/health_check", h.handleRegistry)
	h.mux.HandleFunc("/api/tools/analyze_text", h.handleAnalyzeText)
	h.mux.HandleFunc("/api/tools/find_hard_sentences", h.handleFindHardSentences)
	h.mux.HandleFunc("/api/tools/check_ai_phrases", h.handleCheckAIPhrases)
	h.mux.HandleFunc("/api/tools/batch_analyze", h.handleBatchAnalyze)
	h.mux.HandleFunc("/api/tools/compare_texts", h.handleCompareTexts)
	h.mux.HandleFunc("/api/history", h.handleHistory)
	h.mux.HandleFunc("/api/history/stats", h.handleHistoryStats)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}, http.StatusOK)
}

// ToolInfo describes one registered tool
type ToolInfo struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var tools = []ToolInfo{
	{toolAnalyzeText, http.MethodPost, "/api/tools/analyze_text", "Readability scores, statistics and reading time"},
	{toolFindHardSentences, http.MethodPost, "/api/tools/find_hard_sentences", "Rank the hardest sentences with issue attribution"},
	{toolCheckAIPhrases, http.MethodPost, "/api/tools/check_ai_phrases", "Pattern-based AI likelihood score with recommendations"},
	{toolBatchAnalyze, http.MethodPost, "/api/tools/batch_analyze", "Run selected analyses over up to 50 texts"},
	{toolCompareTexts, http.MethodPost, "/api/tools/compare_texts", "Compare a revision against the original"},
	{toolHealthCheck, http.MethodGet, "/api/tools/health_check", "Service status and available tools"},
}

// handleRegistry lists the available tools (health_check tool)
func (h *Handler) handleRegistry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}

	respondJSON(w, map[string]interface{}{
		"status":          "healthy",
		"version":         version.Version,
		"tools_available": names,
		"tools":           tools,
		"cache_enabled":   h.cacheEnabled(),
		"history_enabled": h.history != nil,
	}, http.StatusOK)
}

func (h *Handler) cacheEnabled() bool {
	_, nop := h.cache.(cache.Nop)
	return !nop
}

// handleHistory lists recorded runs with pagination
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		respondError(w, "Run history is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	runs, err := h.history.ListRuns(r.Context(), r.URL.Query().Get("tool"), limit, offset)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		respondError(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	respondJSON(w, runs, http.StatusOK)
}

// handleHistoryStats aggregates recorded runs per tool
func (h *Handler) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		respondError(w, "Run history is disabled", http.StatusServiceUnavailable)
		return
	}

	stats, err := h.history.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate runs", "error", err)
		respondError(w, "Failed to aggregate runs", http.StatusInternalServerError)
		return
	}

	respondJSON(w, stats, http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
