package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON_SortsKeys(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusOK, map[string]interface{}{
		"title": "Go",
		"id":    int64(9007199254740993),
		"slug":  "go",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":9007199254740993,"slug":"go","title":"Go"}`+"\n", rec.Body.String())
}

func TestRespondWithJSON_KeepsHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusOK, map[string]any{"message": "<p>fish &amp; chips</p>"})

	assert.Equal(t, `{"message":"<p>fish &amp; chips</p>"}`+"\n", rec.Body.String())
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))

	RespondWithError(rec, req, http.StatusNotFound, "Topic not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Topic not found", body.Error)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
}

func TestRespondWithErrorAndLog_HidesErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("dial postgres://admin:hunter2@db:5432 failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
}

func TestRespondNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorLogLevel(t *testing.T) {
	tests := []struct {
		status  int
		elevate bool
		want    slog.Level
	}{
		{status: http.StatusNotFound, want: slog.LevelDebug},
		{status: http.StatusUnauthorized, elevate: true, want: slog.LevelWarn},
		{status: http.StatusTooManyRequests, want: slog.LevelWarn},
		{status: http.StatusInternalServerError, want: slog.LevelError},
		{status: http.StatusServiceUnavailable, elevate: true, want: slog.LevelError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorLogLevel(tt.status, tt.elevate), "status %d", tt.status)
	}
}

func TestRespondWithErrorAndLog_LogsRedactedError(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/topic/", nil)
	req = req.WithContext(logger.WithLogger(SetTraceID(req.Context()), log))
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusUnauthorized, "Invalid token",
		errors.New("password=hunter2 rejected"), WithElevatedLogLevel())

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), GetTraceID(req.Context()))
	assert.NotContains(t, buf.String(), "hunter2")
}
