package testutil

import (
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ResponseAssertion chains checks on one HTTP response. Failures are
// reported through testify and never stop the chain.
type ResponseAssertion struct {
	t    *testing.T
	resp *http.Response
	body *string
}

// AssertResponse starts a chain of checks on resp
func AssertResponse(t *testing.T, resp *http.Response) *ResponseAssertion {
	t.Helper()
	return &ResponseAssertion{t: t, resp: resp}
}

// Body reads the response body once and returns it
func (ra *ResponseAssertion) Body() string {
	if ra.body == nil {
		defer ra.resp.Body.Close()
		b, err := io.ReadAll(ra.resp.Body)
		if err != nil {
			ra.t.Fatalf("reading response body: %v", err)
		}
		s := string(b)
		ra.body = &s
	}
	return *ra.body
}

func (ra *ResponseAssertion) excerpt() string {
	const max = 500
	b := ra.Body()
	if len(b) > max {
		return b[:max] + "..."
	}
	return b
}

// Status checks the status code
func (ra *ResponseAssertion) Status(code int) *ResponseAssertion {
	ra.t.Helper()
	assert.Equal(ra.t, code, ra.resp.StatusCode, "status of %s %s", ra.resp.Request.Method, ra.resp.Request.URL.Path)
	return ra
}

// StatusOK checks for 200
func (ra *ResponseAssertion) StatusOK() *ResponseAssertion {
	ra.t.Helper()
	return ra.Status(http.StatusOK)
}

// ContentType checks that the Content-Type header contains want
func (ra *ResponseAssertion) ContentType(want string) *ResponseAssertion {
	ra.t.Helper()
	assert.Contains(ra.t, ra.resp.Header.Get("Content-Type"), want)
	return ra
}

// ContentTypeHTML checks for an HTML response
func (ra *ResponseAssertion) ContentTypeHTML() *ResponseAssertion {
	ra.t.Helper()
	return ra.ContentType("text/html")
}

// ContentTypeJSON checks for a JSON response
func (ra *ResponseAssertion) ContentTypeJSON() *ResponseAssertion {
	ra.t.Helper()
	return ra.ContentType("application/json")
}

// Contains checks that the body contains every substring
func (ra *ResponseAssertion) Contains(substrs ...string) *ResponseAssertion {
	ra.t.Helper()
	for _, s := range substrs {
		if !strings.Contains(ra.Body(), s) {
			assert.Fail(ra.t, "body is missing expected text", "want %q\nbody: %s", s, ra.excerpt())
		}
	}
	return ra
}

// NotContains checks that the body does not contain s
func (ra *ResponseAssertion) NotContains(s string) *ResponseAssertion {
	ra.t.Helper()
	assert.NotContains(ra.t, ra.Body(), s)
	return ra
}

// HasElement checks for an element with the given id
func (ra *ResponseAssertion) HasElement(id string) *ResponseAssertion {
	ra.t.Helper()
	if !idRe(id).MatchString(ra.Body()) {
		assert.Fail(ra.t, "element not found", "no element #%s\nbody: %s", id, ra.excerpt())
	}
	return ra
}

// NoElement checks that no element has the given id
func (ra *ResponseAssertion) NoElement(id string) *ResponseAssertion {
	ra.t.Helper()
	if idRe(id).MatchString(ra.Body()) {
		assert.Fail(ra.t, "unexpected element", "found element #%s", id)
	}
	return ra
}

// HasClass checks for an element carrying class
func (ra *ResponseAssertion) HasClass(class string) *ResponseAssertion {
	ra.t.Helper()
	re := regexp.MustCompile(`class="[^"]*\b` + regexp.QuoteMeta(class) + `\b[^"]*"`)
	if !re.MatchString(ra.Body()) {
		assert.Fail(ra.t, "class not found", "no element with class %q\nbody: %s", class, ra.excerpt())
	}
	return ra
}

// SwapsOOB checks that the body replaces #id out of band
func (ra *ResponseAssertion) SwapsOOB(id string) *ResponseAssertion {
	ra.t.Helper()
	re := regexp.MustCompile(`<[a-z]+ [^>]*id="` + regexp.QuoteMeta(id) + `"[^>]*hx-swap-oob="true"`)
	if !re.MatchString(ra.Body()) {
		assert.Fail(ra.t, "no out-of-band swap", "#%s is not swapped out of band\nbody: %s", id, ra.excerpt())
	}
	return ra
}

func idRe(id string) *regexp.Regexp {
	return regexp.MustCompile(`id="` + regexp.QuoteMeta(id) + `"`)
}
