package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New("", false, &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("bogus", false, &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New("warn", false, &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New("warn", true, &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.TraceLevel, New("trace", true, &bytes.Buffer{}).GetLevel())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", false, &buf)

	var ctxLogger *zerolog.Logger
	h := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = zerolog.Ctx(r.Context())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("gone"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/pages/abc/snapshot", nil)
	req.Header.Set("HX-Trigger-Name", "Income")
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, ctxLogger)
	assert.NotEqual(t, zerolog.Disabled, ctxLogger.GetLevel())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/pages/abc/snapshot", entry["path"])
	assert.Equal(t, 404.0, entry["status"])
	assert.Equal(t, 4.0, entry["bytes"])
	assert.Equal(t, "Income", entry["hx_trigger"])
	assert.Equal(t, true, entry["htmx"])
	assert.NotEmpty(t, entry["request_id"])
}
