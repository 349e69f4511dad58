package matchably

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/me/matchably/pkg/model"
)

// Envelope is the response envelope every Matchably endpoint returns.
// The status field discriminates success from failure; error responses
// carry a structured code alongside the human-readable message.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Code    model.ErrorCode `json:"code,omitempty"`
}

// OK reports whether the envelope carries a success response.
func (e *Envelope) OK() bool {
	return e.Status == "success"
}

// Client provides methods to interact with the Matchably REST API.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
	requestID  atomic.Int64
}

// NewClient creates a new Matchably API client with the given
// configuration.
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		logger: logger.With("component", "matchably-client"),
	}
}

// Token returns the current user token.
func (c *Client) Token() string {
	return c.config.Token
}

// SetToken updates the user token.
func (c *Client) SetToken(token string) {
	c.config.Token = token
}

// SetAdminToken updates the admin token.
func (c *Client) SetAdminToken(token string) {
	c.config.AdminToken = token
}

// AsUser returns a client that sends the given user token, sharing the
// underlying HTTP client. The portal uses this to issue requests with
// per-session tokens.
func (c *Client) AsUser(token string) *Client {
	return &Client{
		httpClient: c.httpClient,
		config:     c.config.WithToken(token),
		logger:     c.logger,
	}
}

// nextID generates a unique request ID.
func (c *Client) nextID() string {
	c.requestID.Add(1)
	return "req_" + uuid.New().String()[:8]
}

// request executes an API call and decodes the body into out (which
// must embed Envelope) when out is non-nil. Transport faults and
// retryable server errors are retried with exponential backoff.
func (c *Client) request(ctx context.Context, op, method, path, token string, body, out any) error {
	logger := c.logger.With("op", op, "method", method, "path", path)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return WrapError(op, fmt.Errorf("marshaling request: %w", err))
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			logger.Debug("retrying after delay", "attempt", attempt, "delay", delay)

			select {
			case <-ctx.Done():
				return WrapError(op, ctx.Err())
			case <-time.After(delay):
			}
		}

		err := c.doRequest(ctx, op, method, path, token, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		logger.Debug("request failed, will retry", "error", err, "attempt", attempt)
	}

	return WrapError(op, fmt.Errorf("all retries exhausted: %w", lastErr))
}

// doRequest performs a single HTTP request and parses the envelope.
func (c *Client) doRequest(ctx context.Context, op, method, path, token string, payload []byte, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return WrapError(op, fmt.Errorf("creating HTTP request: %w", err))
	}

	reqID := c.nextID()
	httpReq.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	c.logger.Debug("sending request", "request_id", reqID, "method", method, "path", path)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return WrapError(op, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return WrapError(op, fmt.Errorf("reading response: %w", err))
	}

	var env Envelope
	envErr := json.Unmarshal(respBody, &env)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if envErr == nil && env.Status != "" && !env.OK() {
			if env.Code == "" {
				env.Code = codeForHTTPStatus(httpResp.StatusCode)
			}
			return fromEnvelope(op, &env)
		}
		return WrapError(op, &HTTPError{StatusCode: httpResp.StatusCode, Body: string(respBody)})
	}

	if envErr != nil {
		return WrapError(op, fmt.Errorf("unmarshaling envelope: %w", envErr))
	}
	if !env.OK() {
		if env.Code == "" {
			env.Code = model.ErrInternal
		}
		return fromEnvelope(op, &env)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return WrapError(op, fmt.Errorf("unmarshaling response: %w", err))
		}
	}
	return nil
}

// codeForHTTPStatus maps an HTTP status to a structured code for
// envelopes that predate the code field.
func codeForHTTPStatus(status int) model.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return model.ErrUnauthorized
	case status == http.StatusForbidden:
		return model.ErrForbidden
	case status == http.StatusNotFound:
		return model.ErrNotFound
	case status == http.StatusConflict:
		return model.ErrConflict
	case status == http.StatusBadRequest:
		return model.ErrValidation
	case status >= 500:
		return model.ErrInternal
	default:
		return model.ErrInternal
	}
}

// get performs a GET as the current user.
func (c *Client) get(ctx context.Context, op, path string, out any) error {
	return c.request(ctx, op, http.MethodGet, path, c.config.Token, nil, out)
}

// post performs a POST as the current user.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	return c.request(ctx, op, http.MethodPost, path, c.config.Token, body, out)
}

// put performs a PUT as the current user.
func (c *Client) put(ctx context.Context, op, path string, body, out any) error {
	return c.request(ctx, op, http.MethodPut, path, c.config.Token, body, out)
}

// del performs a DELETE as the current user.
func (c *Client) del(ctx context.Context, op, path string, out any) error {
	return c.request(ctx, op, http.MethodDelete, path, c.config.Token, nil, out)
}

// adminGet performs a GET with the admin token.
func (c *Client) adminGet(ctx context.Context, op, path string, out any) error {
	return c.request(ctx, op, http.MethodGet, path, c.config.AdminToken, nil, out)
}

// adminPost performs a POST with the admin token.
func (c *Client) adminPost(ctx context.Context, op, path string, body, out any) error {
	return c.request(ctx, op, http.MethodPost, path, c.config.AdminToken, body, out)
}

// adminPut performs a PUT with the admin token.
func (c *Client) adminPut(ctx context.Context, op, path string, body, out any) error {
	return c.request(ctx, op, http.MethodPut, path, c.config.AdminToken, body, out)
}

// adminDel performs a DELETE with the admin token.
func (c *Client) adminDel(ctx context.Context, op, path string, out any) error {
	return c.request(ctx, op, http.MethodDelete, path, c.config.AdminToken, nil, out)
}
