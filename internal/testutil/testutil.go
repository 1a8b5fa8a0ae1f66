// Package testutil provides HTTP test helpers for the fincast server.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var pageIDRe = regexp.MustCompile(`data-page="([^"]+)"`)

// ProjectRoot is the directory holding go.mod, found by walking up from
// this file
func ProjectRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("testutil: no caller info")
	}
	for dir := filepath.Dir(file); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if dir == filepath.Dir(dir) {
			panic("testutil: go.mod not found")
		}
	}
}

// TestConfig is the FINCAST_* environment tests run the server with. The
// backend URL is empty so the server runs offline.
func TestConfig(dataDir string) map[string]string {
	root := ProjectRoot()
	return map[string]string{
		"FINCAST_DATA_DIR":      dataDir,
		"FINCAST_TEMPLATES_DIR": filepath.Join(root, "web", "templates"),
		"FINCAST_STATIC_DIR":    filepath.Join(root, "web", "static"),
		"FINCAST_BACKEND_URL":   "",
		"FINCAST_LISTEN_ADDR":   ":0",
	}
}

// SetTestEnv applies TestConfig with a fresh data directory for the
// duration of the test
func SetTestEnv(t *testing.T) {
	t.Helper()
	for k, v := range TestConfig(t.TempDir()) {
		t.Setenv(k, v)
	}
}

// TestServer is an httptest server with request helpers bound to a test
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	t       *testing.T
}

// NewTestServer serves handler until the test ends
func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &TestServer{Server: srv, BaseURL: srv.URL, t: t}
}

func (ts *TestServer) do(method, path string, body io.Reader, header http.Header) *http.Response {
	ts.t.Helper()

	req, err := http.NewRequest(method, ts.BaseURL+path, body)
	if err != nil {
		ts.t.Fatalf("%s %s: %v", method, path, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := ts.Server.Client().Do(req)
	if err != nil {
		ts.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

// GET requests path
func (ts *TestServer) GET(path string) *http.Response {
	ts.t.Helper()
	return ts.do(http.MethodGet, path, nil, nil)
}

// POST sends body with the given content type
func (ts *TestServer) POST(path, contentType string, body io.Reader) *http.Response {
	ts.t.Helper()
	return ts.do(http.MethodPost, path, body, http.Header{"Content-Type": {contentType}})
}

// POSTForm posts url-encoded values the way htmx does for a triggered
// element; headers adds e.g. HX-Trigger-Name
func (ts *TestServer) POSTForm(path string, values url.Values, headers map[string]string) *http.Response {
	ts.t.Helper()

	h := http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
		"Hx-Request":   {"true"},
	}
	for k, v := range headers {
		h.Set(k, v)
	}
	return ts.do(http.MethodPost, path, strings.NewReader(values.Encode()), h)
}

// OpenPage loads a full page and returns the id of its page context
func (ts *TestServer) OpenPage(path string) string {
	ts.t.Helper()

	resp := ts.GET(path)
	body := ReadBody(ts.t, resp)
	if resp.StatusCode != http.StatusOK {
		ts.t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	m := pageIDRe.FindStringSubmatch(body)
	if m == nil {
		ts.t.Fatalf("GET %s: no page id in body", path)
	}
	return m[1]
}

// ReadBody reads and closes the response body
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(b)
}
