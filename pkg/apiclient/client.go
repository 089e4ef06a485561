package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwapio/console/pkg/contextkeys"
	"github.com/mwapio/console/pkg/observability"
)

// TokenSource supplies the current bearer token for outgoing requests.
// An empty string means "no credential"; implementations log failures
// instead of returning them.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed-token TokenSource, mainly for tests
type StaticToken string

// Token implements TokenSource
func (t StaticToken) Token(ctx context.Context) string { return string(t) }

// Client is the bearer-authenticated HTTP client for the MWAP backend
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *observability.Logger
	metrics *observability.Metrics
	retry   Policy
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTransport overrides the transport of the underlying HTTP client
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithLogger sets the structured logger
func WithLogger(logger *observability.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRetryPolicy overrides the GET retry policy
func WithRetryPolicy(p Policy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a client for the given API base URL
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %s", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		logger:  observability.NewLogger(observability.InfoLevel, nil),
		retry:   DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches path into dest, retrying per the client's retry policy
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.retry.Wait(ctx, attempt-1); err != nil {
				return err
			}
			c.metrics.RecordRetry(path)
			c.logger.WithField("path", path).WithField("attempt", attempt).Debug("retrying GET")
		}

		err := c.do(ctx, http.MethodGet, path, query, nil, "", dest)
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !c.retry.Retryable(apiErr.StatusCode) {
			return err
		}
		// Network errors and retryable statuses loop around.
	}
	return lastErr
}

// Post sends a JSON creation request. Never retried.
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, dest)
}

// Patch sends a JSON update request. Never retried.
func (c *Client) Patch(ctx context.Context, path string, body, dest interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, dest)
}

// Delete sends a deletion request. Never retried.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// Upload sends a multipart file upload. Never retried.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, r io.Reader, dest interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType(), dest)
}

// doJSON marshals body and performs a non-retried request
func (c *Client) doJSON(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, reader, "application/json", dest)
}

// do performs one HTTP round trip and normalizes the response
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, dest interface{}) error {
	u := *c.baseURL
	u.Path = joinPath(u.Path, path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	requestID := contextkeys.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = contextkeys.WithRequestID(ctx, requestID)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveAPIRequest(method, path, 0, time.Since(start))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.ObserveAPIRequest(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	log := c.logger.WithFields(map[string]interface{}{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(respBody, http.StatusText(resp.StatusCode))
		log.WithField("message", msg).Debug("API request failed")
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := Unwrap(respBody, dest); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 0 {
			apiErr.StatusCode = resp.StatusCode
		}
		log.WithError(err).Debug("API response rejected")
		return err
	}

	log.Debug("API request completed")
	return nil
}

// joinPath joins the base path and the request path with one slash
func joinPath(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
