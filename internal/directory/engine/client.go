package engine

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
)

// Client implements Provider against the engine's interaction API:
//
//	GET  {base}/interactions/{uid}
//	POST {base}/interactions/{uid}/result
//	GET  {base}/grants/{id}
//	PUT  {base}/grants
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Token, when set, authenticates the directory to the engine.
	Token string
}

var _ Provider = (*Client)(nil)

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token: token,
	}
}

// Error is a non-2xx response from the engine.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine: HTTP %d: %s", e.StatusCode, e.Body)
}

func (c *Client) InteractionDetails(ctx context.Context, uid string) (Interaction, error) {
	var out Interaction
	err := c.do(ctx, http.MethodGet, "/interactions/"+url.PathEscape(uid), nil, &out)
	if isNotFound(err) {
		return Interaction{}, ErrInteractionNotFound
	}
	return out, err
}

type finishRequest struct {
	Result                  Result `json:"result"`
	MergeWithLastSubmission bool   `json:"mergeWithLastSubmission"`
}

type finishResponse struct {
	RedirectTo string `json:"redirectTo"`
}

func (c *Client) InteractionFinished(ctx context.Context, uid string, result Result, merge bool) (string, error) {
	var out finishResponse
	err := c.do(ctx, http.MethodPost, "/interactions/"+url.PathEscape(uid)+"/result",
		finishRequest{Result: result, MergeWithLastSubmission: merge}, &out)
	if isNotFound(err) {
		return "", ErrInteractionNotFound
	}
	if err != nil {
		return "", err
	}
	if out.RedirectTo == "" {
		return "", fmt.Errorf("engine: finish interaction %s: empty redirect", uid)
	}
	return out.RedirectTo, nil
}

func (c *Client) FindGrant(ctx context.Context, id string) (Grant, error) {
	var out Grant
	err := c.do(ctx, http.MethodGet, "/grants/"+url.PathEscape(id), nil, &out)
	if isNotFound(err) {
		return Grant{}, ErrGrantNotFound
	}
	return out, err
}

type saveGrantResponse struct {
	ID string `json:"id"`
}

func (c *Client) SaveGrant(ctx context.Context, g Grant) (string, error) {
	var out saveGrantResponse
	if err := c.do(ctx, http.MethodPut, "/grants", g, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("engine: save grant: empty id")
	}
	return out.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("engine: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("engine: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("engine: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("engine: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("engine: decode response: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}
