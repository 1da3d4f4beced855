package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestHTTPLoggingMiddleware(t *testing.T) {
	logger, buf := newBufferLogger()

	handler := HTTPLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/tools/analyze_text?x=1", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/api/tools/analyze_text", entry["path"])
	assert.Equal(t, "x=1", entry["query"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(5), entry["bytes"])
}

func TestHTTPLoggingMiddlewareHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantLog bool
	}{
		{"healthy is silent", http.StatusOK, false},
		{"unhealthy is logged", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			handler := HTTPLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	logger, buf := newBufferLogger()

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.Contains(t, buf.String(), "panic_recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestHTTPErrorLogger(t *testing.T) {
	logger, buf := newBufferLogger()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/compare_texts", nil)

	HTTPErrorLogger(logger, http.StatusUnprocessableEntity, errors.New("no sentences"), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_error", entry["msg"])
	assert.Equal(t, "no sentences", entry["error"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), entry["status"])
}
