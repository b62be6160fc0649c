package issues

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	listPath   = "/api/issues/user"
	returnPath = "/api/issues/return"

	// maxErrorBody bounds how much of a failed response is read for diagnostics.
	maxErrorBody = 4 << 10
)

// Client talks to the external issue backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTracer sets the tracer used for outgoing calls.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// NewClient creates a new issue backend client.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer("issuedesk/issues"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListIssues fetches every issue recorded for the roll number.
// Any non-success response is reported as domain.ErrFetchFailed.
func (c *Client) ListIssues(ctx context.Context, rollNumber string) ([]domain.IssueRecord, error) {
	ctx, span := c.tracer.Start(ctx, "issues.list", trace.WithAttributes(attribute.String("issue.roll", rollNumber)))
	defer span.End()

	q := url.Values{}
	q.Set("roll", rollNumber)
	req, err := c.newRequest(ctx, http.MethodGet, listPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, c.fail(span, fmt.Errorf("%w: %s - %s", domain.ErrFetchFailed, resp.Status, strings.TrimSpace(string(body))))
	}

	var records []domain.IssueRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: decode response: %v", domain.ErrFetchFailed, err))
	}
	if records == nil {
		records = []domain.IssueRecord{}
	}

	span.SetAttributes(attribute.Int("issue.count", len(records)))
	return records, nil
}

// ReturnItem asks the backend to mark an issue returned. A 2xx response only
// counts as success when its body is truthy; failures are *domain.ReturnError.
func (c *Client) ReturnItem(ctx context.Context, id domain.IssueID) error {
	ctx, span := c.tracer.Start(ctx, "issues.return", trace.WithAttributes(attribute.String("issue.id", id.String())))
	defer span.End()

	payload, err := json.Marshal(struct {
		IssueID domain.IssueID `json:"issueId"`
	}{IssueID: id})
	if err != nil {
		return c.fail(span, &domain.ReturnError{Err: err})
	}

	req, err := c.newRequest(ctx, http.MethodPost, returnPath, bytes.NewReader(payload))
	if err != nil {
		return c.fail(span, &domain.ReturnError{Err: err})
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(span, &domain.ReturnError{Err: err})
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return c.fail(span, &domain.ReturnError{StatusCode: resp.StatusCode, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(span, &domain.ReturnError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(body),
			Err:        errors.New(resp.Status),
		})
	}

	if !truthy(body) {
		return c.fail(span, &domain.ReturnError{
			StatusCode: resp.StatusCode,
			Err:        errors.New("empty or falsy response body"),
		})
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	return req, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.Debug("issue backend call failed", "error", err)
	return err
}

// requestID reuses the inbound request ID so backend logs can be correlated.
func requestID(ctx context.Context) string {
	if id := logging.RequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// serverMessage extracts the optional "message" field of an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// truthy mirrors how a JSON client treats a response body as a boolean:
// empty, null, false, 0 and "" are falsy; anything else (objects and arrays included) is truthy.
func truthy(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return false
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		// A non-JSON body is a non-empty string.
		return true
	}

	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}
