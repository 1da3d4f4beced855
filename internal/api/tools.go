package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zombar/readability-analyzer/internal/analyzer"
	"github.com/zombar/readability-analyzer/internal/cache"
	"github.com/zombar/readability-analyzer/internal/database"
	"github.com/zombar/readability-analyzer/internal/models"
	"github.com/zombar/readability-analyzer/internal/readability"
	"github.com/zombar/readability-analyzer/internal/textutil"
	"github.com/zombar/readability-analyzer/internal/tracing"
	"github.com/zombar/readability-analyzer/internal/validation"
)

const (
	toolAnalyzeText       = "analyze_text"
	toolFindHardSentences = "find_hard_sentences"
	toolCheckAIPhrases    = "check_ai_phrases"
	toolBatchAnalyze      = "batch_analyze"
	toolCompareTexts      = "compare_texts"
	toolHealthCheck       = "health_check"

	statusOK              = "ok"
	statusValidationError = "validation_error"
	statusProcessingError = "processing_error"
	statusInternalError   = "internal_error"
)

// textSeparator joins multi-text inputs for hashing. The NUL keeps distinct
// splits from colliding and the newlines keep word counts separate.
const textSeparator = "\n\x00\n"

// maxBodyBytes bounds a request body: a full batch of maximum-length texts
// plus JSON overhead.
const maxBodyBytes = 64 << 20

// toolCall is one validated tool invocation
type toolCall struct {
	tool   string
	text   string      // hashed for the cache key and the run record
	params interface{} // normalized parameters, part of the cache key
	run    func(ctx context.Context) (result interface{}, headline *float64, err error)
}

// cachedEntry is what the result cache stores for a call
type cachedEntry struct {
	Headline *float64        `json:"headline,omitempty"`
	Body     json.RawMessage `json:"body"`
}

func (h *Handler) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string   `json:"text"`
		Metrics []string `json:"metrics"`
	}
	if !h.decode(w, r, toolAnalyzeText, &req) {
		return
	}

	text, err := validation.Text(req.Text)
	if err != nil {
		h.fail(w, r, toolAnalyzeText, err, time.Now())
		return
	}
	metricSet, err := validation.Metrics(req.Metrics)
	if err != nil {
		h.fail(w, r, toolAnalyzeText, err, time.Now())
		return
	}

	h.serveTool(w, r, toolCall{
		tool:   toolAnalyzeText,
		text:   text,
		params: struct {
			Metrics []readability.Metric `json:"metrics"`
		}{metricSet},
		run: func(ctx context.Context) (interface{}, *float64, error) {
			res, err := h.analyzer.Readability(ctx, text, metricSet)
			if err != nil {
				return nil, nil, err
			}
			grade := res.FleschKincaidGrade
			return res, &grade, nil
		},
	})
}

func (h *Handler) handleFindHardSentences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string   `json:"text"`
		Count     *int     `json:"count"`
		Threshold *float64 `json:"threshold"`
	}
	if !h.decode(w, r, toolFindHardSentences, &req) {
		return
	}

	text, err := validation.Text(req.Text)
	if err != nil {
		h.fail(w, r, toolFindHardSentences, err, time.Now())
		return
	}
	count, threshold, err := h.sentenceParams(req.Count, req.Threshold)
	if err != nil {
		h.fail(w, r, toolFindHardSentences, err, time.Now())
		return
	}

	h.serveTool(w, r, toolCall{
		tool: toolFindHardSentences,
		text: text,
		params: struct {
			Count     int      `json:"count"`
			Threshold *float64 `json:"threshold"`
		}{count, threshold},
		run: func(ctx context.Context) (interface{}, *float64, error) {
			res, err := h.analyzer.RankHardSentences(ctx, text, count, threshold)
			if err != nil {
				return nil, nil, err
			}
			h.metrics.SentencesRanked.Add(float64(res.TotalSentences))
			avg := res.AverageGradeLevel
			return res, &avg, nil
		},
	})
}

func (h *Handler) handleCheckAIPhrases(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text        string `json:"text"`
		Sensitivity string `json:"sensitivity"`
	}
	if !h.decode(w, r, toolCheckAIPhrases, &req) {
		return
	}

	text, err := validation.Text(req.Text)
	if err != nil {
		h.fail(w, r, toolCheckAIPhrases, err, time.Now())
		return
	}
	sensitivity, err := h.sensitivity(req.Sensitivity)
	if err != nil {
		h.fail(w, r, toolCheckAIPhrases, err, time.Now())
		return
	}

	h.serveTool(w, r, toolCall{
		tool: toolCheckAIPhrases,
		text: text,
		params: struct {
			Sensitivity models.Sensitivity `json:"sensitivity"`
		}{sensitivity},
		run: func(ctx context.Context) (interface{}, *float64, error) {
			res := h.analyzer.DetectAIPatterns(ctx, text, sensitivity)
			h.metrics.ObserveAIScore(res.Score, res.CategoryCounts)
			score := res.Score
			return res, &score, nil
		},
	})
}

func (h *Handler) handleBatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts         []string `json:"texts"`
		AnalysisTypes []string `json:"analysis_types"`
		Sensitivity   string   `json:"sensitivity"`
		Count         *int     `json:"count"`
		Threshold     *float64 `json:"threshold"`
		Metrics       []string `json:"metrics"`
	}
	if !h.decode(w, r, toolBatchAnalyze, &req) {
		return
	}

	start := time.Now()
	texts, err := validation.Batch(req.Texts)
	if err != nil {
		h.fail(w, r, toolBatchAnalyze, err, start)
		return
	}
	types, err := validation.AnalysisTypes(req.AnalysisTypes)
	if err != nil {
		h.fail(w, r, toolBatchAnalyze, err, start)
		return
	}

	opts := analyzer.DefaultOptions()
	if opts.Sensitivity, err = h.sensitivity(req.Sensitivity); err != nil {
		h.fail(w, r, toolBatchAnalyze, err, start)
		return
	}
	if opts.Count, opts.Threshold, err = h.sentenceParams(req.Count, req.Threshold); err != nil {
		h.fail(w, r, toolBatchAnalyze, err, start)
		return
	}
	if opts.Metrics, err = validation.Metrics(req.Metrics); err != nil {
		h.fail(w, r, toolBatchAnalyze, err, start)
		return
	}

	h.serveTool(w, r, toolCall{
		tool: toolBatchAnalyze,
		text: strings.Join(texts, textSeparator),
		params: struct {
			Types   []models.AnalysisType `json:"types"`
			Options analyzer.Options      `json:"options"`
		}{types, opts},
		run: func(ctx context.Context) (interface{}, *float64, error) {
			res, err := h.analyzer.Batch(ctx, texts, types, opts)
			if err != nil {
				return nil, nil, err
			}
			for _, item := range res.Items {
				if item.AIPatterns != nil {
					h.metrics.ObserveAIScore(item.AIPatterns.Score, item.AIPatterns.CategoryCounts)
				}
			}
			return res, res.Summary.AverageAIScore, nil
		},
	})
}

func (h *Handler) handleCompareTexts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Before      string `json:"before"`
		After       string `json:"after"`
		Sensitivity string `json:"sensitivity"`
	}
	if !h.decode(w, r, toolCompareTexts, &req) {
		return
	}

	start := time.Now()
	before, err := validation.Text(req.Before)
	if err != nil {
		h.fail(w, r, toolCompareTexts, prefixValidation("Original text", err), start)
		return
	}
	after, err := validation.Text(req.After)
	if err != nil {
		h.fail(w, r, toolCompareTexts, prefixValidation("Revised text", err), start)
		return
	}

	opts := analyzer.DefaultOptions()
	if opts.Sensitivity, err = h.sensitivity(req.Sensitivity); err != nil {
		h.fail(w, r, toolCompareTexts, err, start)
		return
	}

	h.serveTool(w, r, toolCall{
		tool: toolCompareTexts,
		text: before + textSeparator + after,
		params: struct {
			Sensitivity models.Sensitivity `json:"sensitivity"`
		}{opts.Sensitivity},
		run: func(ctx context.Context) (interface{}, *float64, error) {
			res, err := h.analyzer.Compare(ctx, before, after, opts)
			if err != nil {
				return nil, nil, err
			}
			return res, nil, nil
		},
	})
}

// serveTool runs a validated call through the cache, records the outcome and
// writes the response
func (h *Handler) serveTool(w http.ResponseWriter, r *http.Request, call toolCall) {
	start := time.Now()
	ctx := r.Context()

	tracing.SetSpanAttributes(ctx,
		attribute.String("tool.name", call.tool),
		attribute.Int("text.length", len(call.text)))

	key, err := cache.Key(call.tool, call.params, call.text)
	if err != nil {
		h.logger.Warn("failed to build cache key", "tool", call.tool, "error", err)
		key = ""
	}

	if key != "" && h.cacheEnabled() {
		raw, err := h.cache.Get(ctx, key)
		switch {
		case err == nil:
			var entry cachedEntry
			if err := json.Unmarshal(raw, &entry); err == nil {
				h.metrics.ObserveCache(true)
				tracing.SetSpanAttributes(ctx, attribute.Bool("cache.hit", true))
				h.record(ctx, call, entry.Headline, statusOK, start)
				w.Header().Set("X-Cache", "HIT")
				writeRaw(w, entry.Body, http.StatusOK)
				return
			}
			h.logger.Warn("discarding unreadable cache entry", "tool", call.tool)
		case !errors.Is(err, cache.ErrMiss):
			h.logger.Warn("cache lookup failed", "tool", call.tool, "error", err)
		}
		h.metrics.ObserveCache(false)
	}

	result, headline, err := call.run(ctx)
	if err != nil {
		h.fail(w, r, call.tool, err, start)
		if errors.As(err, new(*models.Error)) {
			h.record(ctx, call, nil, statusProcessingError, start)
		}
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		h.fail(w, r, call.tool, err, start)
		return
	}

	if key != "" && h.cacheEnabled() {
		entry, err := json.Marshal(cachedEntry{Headline: headline, Body: body})
		if err == nil {
			err = h.cache.Set(ctx, key, entry)
		}
		if err != nil {
			h.logger.Warn("failed to store cache entry", "tool", call.tool, "error", err)
		}
	}

	h.record(ctx, call, headline, statusOK, start)
	if h.cacheEnabled() {
		w.Header().Set("X-Cache", "MISS")
	}
	writeRaw(w, body, http.StatusOK)
}

// record updates metrics and the run history. History failures are logged
// and never fail the request.
func (h *Handler) record(ctx context.Context, call toolCall, headline *float64, status string, start time.Time) {
	elapsed := time.Since(start)
	h.metrics.ObserveTool(call.tool, status, elapsed)

	if h.history == nil {
		return
	}

	run := &models.Run{
		Tool:       call.tool,
		TextHash:   database.TextHash(call.text),
		WordCount:  len(textutil.Words(call.text)),
		Score:      headline,
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
	}
	if err := h.history.SaveRun(ctx, run); err != nil {
		h.logger.Warn("failed to record run", "tool", call.tool, "error", err)
	}
}

// fail classifies err and writes the matching error response: 400 for
// validation errors, 422 for processing errors, 500 otherwise.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, tool string, err error, start time.Time) {
	var perr *models.Error

	switch {
	case validation.IsValidationError(err):
		h.metrics.ObserveTool(tool, statusValidationError, time.Since(start))
		respondJSON(w, validation.Response(err), http.StatusBadRequest)
	case errors.As(err, &perr):
		// serveTool records processing errors itself together with the run
		h.logger.Info("tool processing error", "tool", tool, "kind", perr.Kind, "error", err)
		respondJSON(w, models.ProcessingErrorResponse(err), http.StatusUnprocessableEntity)
	default:
		h.metrics.ObserveTool(tool, statusInternalError, time.Since(start))
		h.logger.Error("tool failed", "tool", tool, "error", err, "path", r.URL.Path)
		respondJSON(w, &models.ErrorResponse{
			Error:   "Internal error",
			Message: "unexpected failure while running " + tool,
			Type:    statusInternalError,
		}, http.StatusInternalServerError)
	}
}

// decode enforces POST and parses the JSON body into dst
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, tool string, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.fail(w, r, tool, &validation.Error{Message: "Invalid request body: " + err.Error()}, time.Now())
		return false
	}
	return true
}

func (h *Handler) sensitivity(s string) (models.Sensitivity, error) {
	if strings.TrimSpace(s) == "" {
		s = h.defaultSensitivity
	}
	return validation.Sensitivity(s)
}

// sentenceParams validates the ranker inputs. A nil count falls back to the
// configured default.
func (h *Handler) sentenceParams(count *int, threshold *float64) (int, *float64, error) {
	n := h.defaultCount
	if count != nil {
		n = *count
	}
	n, err := validation.Count(n)
	if err != nil {
		return 0, nil, err
	}

	if threshold != nil {
		t, err := validation.Threshold(*threshold)
		if err != nil {
			return 0, nil, err
		}
		threshold = &t
	}
	return n, threshold, nil
}

func prefixValidation(label string, err error) error {
	return &validation.Error{Message: label + ": " + err.Error()}
}

func writeRaw(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}
