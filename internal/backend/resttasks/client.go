// Package resttasks implements the service.Service interface against
// the ToDoList REST API.
package resttasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"todoterm/internal/service"
)

// Client implements service.Service over HTTP. Every request carries
// the bearer credential in the Authorization header.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a client for the service at baseURL, authenticating with
// the given bearer token.
func New(ctx context.Context, baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    oauth2.NewClient(ctx, src),
		log:     log,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     zap.NewNop(),
	}
}

// ListTasks returns one page of tasks plus metadata and summary.
func (c *Client) ListTasks(ctx context.Context, page, limit int) (service.TaskPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out service.TaskPage
	if err := c.do(ctx, http.MethodGet, "/tasks?"+q.Encode(), nil, http.StatusOK, &out); err != nil {
		return service.TaskPage{}, err
	}
	return out, nil
}

// CreateTask creates a task. The server assigns the identifier.
func (c *Client) CreateTask(ctx context.Context, description string) (service.Task, error) {
	body := map[string]any{"description": description}

	var out service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, http.StatusCreated, &out); err != nil {
		return service.Task{}, err
	}
	return out, nil
}

// PatchTask applies one field-group change to a task.
func (c *Client) PatchTask(ctx context.Context, id string, change service.Change) (service.Task, error) {
	var out service.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), change.Body(), http.StatusOK, &out); err != nil {
		return service.Task{}, err
	}
	return out, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

// do issues one request and decodes the response into out (if non-nil).
// A 401 maps to service.ErrUnauthorized; any other unexpected status,
// network failure, or malformed body is a plain service error.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("task service unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("task service call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, service.ErrUnauthorized)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
