// Package backend talks to the prediction service: the sample dashboard
// snapshot and notebook-backed predictions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fincast/internal/models"
)

const (
	snapshotPath = "/api/sample-dashboard"
	predictPath  = "/api/run-notebook"
	maxBodySize  = 8 << 20 // 8 MB

	DefaultSnapshotTimeout   = 10 * time.Second
	DefaultPredictionTimeout = 120 * time.Second
)

var (
	// ErrTimeout indicates the backend did not answer before the deadline.
	ErrTimeout = errors.New("backend: request timed out")
	// ErrNotConfigured is returned for predictions when no backend URL is set.
	ErrNotConfigured = &AppError{Message: "prediction backend is not configured"}
	// ErrBadResponse wraps a 2xx body that is not the expected JSON.
	ErrBadResponse = errors.New("backend: invalid response")
)

// RequestError is a transport failure, a non-2xx response that carried no
// error message, or an undecodable body wrapping ErrBadResponse.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("backend: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// AppError is a failure reported by the backend in its error field
type AppError struct {
	Message string
}

func (e *AppError) Error() string { return e.Message }

// Client calls the prediction backend over HTTP.
type Client struct {
	baseURL           string
	http              *http.Client
	snapshotTimeout   time.Duration
	predictionTimeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeouts overrides the snapshot and prediction deadlines. Zero keeps
// the default.
func WithTimeouts(snapshot, prediction time.Duration) Option {
	return func(c *Client) {
		if snapshot > 0 {
			c.snapshotTimeout = snapshot
		}
		if prediction > 0 {
			c.predictionTimeout = prediction
		}
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		http:              &http.Client{},
		snapshotTimeout:   DefaultSnapshotTimeout,
		predictionTimeout: DefaultPredictionTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SampleDashboard fetches the sample snapshot used to seed the dashboard
func (c *Client) SampleDashboard(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.snapshotTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+snapshotPath, nil)
	if err != nil {
		return nil, &RequestError{Op: "snapshot", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(ctx, req, "snapshot")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &RequestError{Op: "snapshot", Status: status}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, &RequestError{Op: "snapshot", Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
	}
	return &snap, nil
}

// RunNotebook submits a profile for prediction. A response with a non-empty
// error field fails with *AppError even when the status is 2xx.
func (c *Client) RunNotebook(ctx context.Context, payload map[string]interface{}) (*models.PredictionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.predictionTimeout)
	defer cancel()

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Op: "predict", Err: fmt.Errorf("encoding payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(raw))
	if err != nil {
		return nil, &RequestError{Op: "predict", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(ctx, req, "predict")
	if err != nil {
		return nil, err
	}

	var result models.PredictionResult
	if err := json.Unmarshal(body, &result); err != nil {
		if status < 200 || status >= 300 {
			return nil, &RequestError{Op: "predict", Status: status}
		}
		return nil, &RequestError{Op: "predict", Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
	}
	if result.Error != "" {
		return nil, &AppError{Message: result.Error}
	}
	if status < 200 || status >= 300 {
		return nil, &AppError{Message: "Notebook execution failed"}
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, req *http.Request, op string) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, 0, ErrTimeout
		}
		return nil, 0, &RequestError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, 0, ErrTimeout
		}
		return nil, 0, &RequestError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, resp.StatusCode, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// Unconfigured answers predictions when no backend URL is set
type Unconfigured struct{}

// RunNotebook always fails with ErrNotConfigured
func (Unconfigured) RunNotebook(context.Context, map[string]interface{}) (*models.PredictionResult, error) {
	return nil, ErrNotConfigured
}
