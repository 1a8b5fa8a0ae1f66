// Package main provides a CLI tool for validating fincast server endpoints.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

var pageIDRe = regexp.MustCompile(`data-page="([^"]+)"`)

type endpoint struct {
	path        string
	method      string
	form        url.Values
	trigger     string
	contentType string
	contains    []string
	// status defaults to 200
	status int
}

// pageEndpoints are checked against a freshly opened page; {page} is
// replaced with its id
var pageEndpoints = []endpoint{
	{path: "/pages/{page}/snapshot", method: "GET", contentType: "text/html", contains: []string{"sample-status"}},
	{path: "/pages/{page}/forms/prediction-form/evaluate", method: "POST", trigger: "Rent",
		form:        url.Values{"Income": {"50000"}, "Rent": {"30000"}, "City_Tier": {"Tier 1"}},
		contentType: "text/html", contains: []string{"expense-warning-high"}},
	{path: "/pages/{page}/forms/prediction-form/evaluate", method: "POST", trigger: "Income",
		form:        url.Values{"Income": {"50000"}, "Total_Expenses": {"20000"}},
		contentType: "text/html", contains: []string{`value="30000"`}},
	{path: "/pages/{page}/forms/prediction-form/predict", method: "POST",
		form:        url.Values{"Income": {"50000"}, "Age": {"30"}},
		contentType: "text/html", contains: []string{"notebook-runtime"}},
	{path: "/pages/{page}/charts/monthly", method: "GET", contentType: "application/json", status: http.StatusBadRequest},
}

var endpoints = []endpoint{
	// Main pages
	{path: "/dashboard", method: "GET", contentType: "text/html", contains: []string{"Dashboard", "prediction-result"}},
	{path: "/input", method: "GET", contentType: "text/html", contains: []string{"prediction-result-alt"}},

	// Expired pages
	{path: "/pages/expired/snapshot", method: "GET", contentType: "text/html", contains: []string{"expired"}, status: http.StatusNotFound},

	// API
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/api/version", method: "GET", contentType: "application/json", contains: []string{`"version"`}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 130, "Request timeout in seconds")
	parallel := flag.Int("parallel", 4, "Concurrent requests")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	page, err := openPage(client, *baseURL)
	if err != nil {
		fmt.Printf("FAIL GET /dashboard\n     Error: %v\n", err)
		os.Exit(1)
	}

	all := append([]endpoint{}, endpoints...)
	for _, ep := range pageEndpoints {
		ep.path = strings.ReplaceAll(ep.path, "{page}", page)
		all = append(all, ep)
	}

	fmt.Printf("Validating server at %s\n", *baseURL)
	fmt.Printf("Testing %d endpoints...\n\n", len(all))

	results := make([]result, len(all))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*parallel)
	for i, ep := range all {
		g.Go(func() error {
			results[i] = validateEndpoint(ctx, client, *baseURL, ep)
			return nil
		})
	}
	_ = g.Wait()

	failed := report(os.Stdout, results, *verbose)
	fmt.Printf("\n%d passed, %d failed\n", len(results)-failed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// report prints failures, and passes when verbose, returning the number of
// failures
func report(w io.Writer, results []result, verbose bool) int {
	failed := 0
	for _, r := range results {
		ep := r.endpoint
		switch {
		case r.err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %-4s %s [%d]\n     %v\n", ep.method, ep.path, r.status, r.err)
		case verbose:
			fmt.Fprintf(w, "PASS %-4s %s (%v)\n", ep.method, ep.path, r.duration.Round(time.Millisecond))
		}
	}
	return failed
}

// openPage loads the dashboard and returns the id of its page context
func openPage(client *http.Client, baseURL string) (string, error) {
	resp, err := client.Get(baseURL + "/dashboard")
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	m := pageIDRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no page id in /dashboard (status %d)", resp.StatusCode)
	}
	return string(m[1]), nil
}

// request builds the htmx-style request for ep
func (ep endpoint) request(ctx context.Context, baseURL string) (*http.Request, error) {
	var body io.Reader
	if ep.form != nil {
		body = strings.NewReader(ep.form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, baseURL+ep.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("HX-Request", "true")
	if ep.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ep.trigger != "" {
		req.Header.Set("HX-Trigger-Name", ep.trigger)
	}
	return req, nil
}

// verify checks a response against what ep expects
func (ep endpoint) verify(resp *http.Response, body []byte) error {
	want := ep.status
	if want == 0 {
		want = http.StatusOK
	}
	if resp.StatusCode != want {
		return fmt.Errorf("status %d (expected %d)", resp.StatusCode, want)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, ep.contentType) {
		return fmt.Errorf("content type %q (expected %q)", ct, ep.contentType)
	}
	if ep.contentType == "application/json" && !json.Valid(body) {
		return fmt.Errorf("body is not valid JSON")
	}

	for _, needle := range ep.contains {
		if !bytes.Contains(body, []byte(needle)) {
			return fmt.Errorf("body lacks %q", needle)
		}
	}
	return nil
}

func validateEndpoint(ctx context.Context, client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()
	r := result{endpoint: ep}

	req, err := ep.request(ctx, baseURL)
	if err != nil {
		r.err = fmt.Errorf("building request: %w", err)
		return r
	}
	resp, err := client.Do(req)
	if err != nil {
		r.err = fmt.Errorf("request failed: %w", err)
		return r
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	r.status = resp.StatusCode
	r.duration = time.Since(start)
	if err != nil {
		r.err = fmt.Errorf("reading body: %w", err)
		return r
	}
	r.err = ep.verify(resp, body)
	return r
}
