// Package client is a typed HTTP client for the Forgeboard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to a Forgeboard server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the given server URL and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a decoded RFC 7807 problem response.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Title, e.Status, e.Detail)
}

// do issues a request and decodes the response into out (if non-nil).
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		// Best effort; a non-problem body keeps the status-text title.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Health checks server health. No token required.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListRequests lists requests for an owner. An empty owner means the
// token's own identity.
func (c *Client) ListRequests(ctx context.Context, owner string) ([]Request, error) {
	path := "/api/v1/requests"
	if owner != "" {
		path += "?owner=" + url.QueryEscape(owner)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// GetRequest fetches one request by ID.
func (c *Client) GetRequest(ctx context.Context, id string) (*Request, error) {
	var req Request
	if err := c.do(ctx, http.MethodGet, "/api/v1/requests/"+url.PathEscape(id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetProgress fetches the lifecycle record of a published project.
func (c *Client) GetProgress(ctx context.Context, projectID string) (*Progress, error) {
	var prog Progress
	path := "/api/v1/projects/" + url.PathEscape(projectID) + "/progress"
	if err := c.do(ctx, http.MethodGet, path, nil, &prog); err != nil {
		return nil, err
	}
	return &prog, nil
}

// GetAudit fetches the transition history of a project.
func (c *Client) GetAudit(ctx context.Context, projectID string) ([]AuditEntry, error) {
	var resp auditResponse
	path := "/api/v1/projects/" + url.PathEscape(projectID) + "/audit"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Transition requests a status transition for a project.
func (c *Client) Transition(ctx context.Context, projectID, status string) (*Progress, error) {
	var prog Progress
	path := "/api/v1/projects/" + url.PathEscape(projectID) + "/status"
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPost, path, body, &prog); err != nil {
		return nil, err
	}
	return &prog, nil
}
