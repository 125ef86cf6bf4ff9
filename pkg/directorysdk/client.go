package directorysdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Endpoints are the paths of the three directory operations, relative to
// the client's base URL.
type Endpoints struct {
	Count    string `json:"count" yaml:"count"`
	Find     string `json:"find" yaml:"find"`
	Validate string `json:"validate" yaml:"validate"`
}

// DefaultEndpoints matches the paths served under /api/v1/directory.
var DefaultEndpoints = Endpoints{
	Count:    "/count",
	Find:     "/find",
	Validate: "/validate",
}

// Client talks to a directory wire API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token, when set, is sent as a bearer token on every request.
	Token     string
	Endpoints Endpoints
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// WithEndpoints overrides the endpoint paths. Empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		if e.Count != "" {
			c.Endpoints.Count = e.Count
		}
		if e.Find != "" {
			c.Endpoints.Find = e.Find
		}
		if e.Validate != "" {
			c.Endpoints.Validate = e.Validate
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// NewClient creates a client for the directory rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Endpoints: DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count returns the number of accounts. Both a bare integer and a
// {"count": n} object are accepted.
func (c *Client) Count(ctx context.Context) (int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.Endpoints.Count, nil)
	if err != nil {
		return 0, err
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return 0, err
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var wrapped CountResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return 0, fmt.Errorf("failed to decode count: %w", err)
	}
	return wrapped.Count, nil
}

// Find resolves an identifier to an account record.
func (c *Client) Find(ctx context.Context, id string) (map[string]any, error) {
	path := strings.TrimSuffix(c.Endpoints.Find, "/") + "/" + url.PathEscape(id)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := decodeJSON(resp, &record); err != nil {
		return nil, err
	}
	return unwrapUser(record)
}

// FindByEmail resolves an account through its email address by sending
// GET {find}?email=<address>. The query form is an extension served by this
// module's own directory API; a remote directory that only implements
// GET {find}/{id} answers 404 here, so callers that need to work against
// such a server should use Find with the address as the id instead.
func (c *Client) FindByEmail(ctx context.Context, email string) (map[string]any, error) {
	path := strings.TrimSuffix(c.Endpoints.Find, "/") + "?email=" + url.QueryEscape(email)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := decodeJSON(resp, &record); err != nil {
		return nil, err
	}
	return unwrapUser(record)
}

// Validate checks a credential pair and returns the account record on
// success.
func (c *Client) Validate(ctx context.Context, email, password string) (map[string]any, error) {
	body, err := json.Marshal(ValidateRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.Endpoints.Validate, body)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := decodeJSON(resp, &record); err != nil {
		return nil, err
	}
	return unwrapUser(record)
}

// unwrapUser accepts {"user": {...}}, {"valid": false} and bare records.
func unwrapUser(record map[string]any) (map[string]any, error) {
	if record == nil {
		return nil, ErrNotFound
	}
	if valid, ok := record["valid"].(bool); ok && !valid {
		return nil, ErrNotFound
	}
	if user, ok := record["user"]; ok {
		inner, ok := user.(map[string]any)
		if !ok || inner == nil {
			return nil, ErrNotFound
		}
		return inner, nil
	}
	return record, nil
}
