// Package http holds the request and response helpers shared by the
// handlers.
package http

import (
	"encoding/json"
	"html"
	"net/http"

	"github.com/rs/zerolog"
)

// HTMX request headers
const (
	HeaderRequest     = "HX-Request"
	HeaderTriggerName = "HX-Trigger-Name"
)

// Renderer executes a named template into a response
type Renderer interface {
	Render(w http.ResponseWriter, name string, data interface{}) error
}

// IsHTMX reports whether the request was issued by htmx
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// TriggerName is the name attribute of the element that fired the request
func TriggerName(r *http.Request) string {
	return r.Header.Get(HeaderTriggerName)
}

// RenderTemplate renders a template, falling back to a bare notice when no
// renderer is available
func RenderTemplate(w http.ResponseWriter, renderer Renderer, name string, data interface{}) {
	if renderer == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<div><!-- template " + html.EscapeString(name) + " not loaded --></div>"))
		return
	}
	_ = renderer.Render(w, name, data)
}

// JSON writes v as a JSON response
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse logs and sends a plain error response
func ErrorResponse(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	zerolog.Ctx(r.Context()).Warn().Int("status", statusCode).Msg(message)
	http.Error(w, message, statusCode)
}
