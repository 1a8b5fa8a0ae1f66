package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRenderer struct{ name string }

func (s *stubRenderer) Render(w http.ResponseWriter, name string, data interface{}) error {
	s.name = name
	_, _ = w.Write([]byte("ok"))
	return errors.New("ignored")
}

func TestHTMXHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.False(t, IsHTMX(r))
	assert.Empty(t, TriggerName(r))

	r.Header.Set("HX-Request", "true")
	r.Header.Set("HX-Trigger-Name", "Income")
	assert.True(t, IsHTMX(r))
	assert.Equal(t, "Income", TriggerName(r))
}

func TestRenderTemplate(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderTemplate(rec, nil, "<snapshot>", nil)
	assert.Contains(t, rec.Body.String(), "&lt;snapshot&gt; not loaded")

	stub := &stubRenderer{}
	rec = httptest.NewRecorder()
	RenderTemplate(rec, stub, "snapshot", nil)
	assert.Equal(t, "snapshot", stub.name)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"status": "ok"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorResponse(rec, httptest.NewRequest(http.MethodGet, "/", nil), "page not found", http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "page not found")
}
