// Package remote is the HTTP client of the CRM backend. Every failure is
// returned as *Error; request payloads are validated before they are sent.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crmdesk/crm-system/internal/pkg/validation"
)

const defaultTimeout = 15 * time.Second

// Client talks to the /api routes. A Client is safe for concurrent use;
// WithToken returns a copy bound to a bearer token.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	token    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// New creates a Client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		validate: validation.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// check validates a request payload before any network activity.
func (c *Client) check(payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return &Error{Kind: KindValidation, Message: validation.Describe(err), Err: err}
	}
	return nil
}

type errorBody struct {
	Error  string `json:"error"`
	Detail any    `json:"detail"`
}

// do performs one JSON round trip. in may be nil; out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.doWithToken(ctx, c.token, method, path, query, in, out)
}

func (c *Client) doWithToken(ctx context.Context, token, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "cannot encode request", Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &Error{Kind: KindServer, Message: "cannot build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "cannot reach the CRM server", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: "connection interrupted", Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: failureMessage(resp.StatusCode, data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "unexpected response from server", Err: err}
	}
	return nil
}

// failureMessage extracts the user-facing text from an error body. Both the
// {"error": "..."} envelope and {"detail": ...} bodies are understood.
func failureMessage(status int, data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		switch d := eb.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case nil:
		default:
			if b, err := json.Marshal(d); err == nil {
				return string(b)
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func escape(id string) string {
	return url.PathEscape(id)
}

// IsRetryable reports whether re-invoking the operation may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
