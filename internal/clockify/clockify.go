// Package clockify provides a minimal client for the Clockify REST API:
// workspace and project listing and time entry creation.
package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bryan-cox/clockfill/internal/model"
)

// MaxPageSize is the largest page the projects endpoint accepts.
const MaxPageSize = 100

// DefaultPageSize is used for project listing when none is given.
const DefaultPageSize = 50

// StatusError is returned when the service answers with an unexpected
// status. Body holds the raw response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clockify API returned status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Unwrap classifies status errors as transport errors.
func (e *StatusError) Unwrap() error {
	return model.ErrTransport
}

// Client talks to one Clockify API base URL with one API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// ListWorkspaces returns every workspace visible to the API key.
func (c *Client) ListWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/workspaces", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	var workspaces []model.Workspace
	if err := json.Unmarshal(body, &workspaces); err != nil {
		return nil, fmt.Errorf("%w: failed to decode workspaces: %v", model.ErrTransport, err)
	}
	return workspaces, nil
}

// ListProjects pages through a workspace's projects until an empty page is
// returned. On failure the projects gathered so far are returned with the
// error.
func (c *Client) ListProjects(ctx context.Context, workspaceID string, pageSize int) ([]model.ProjectEntry, error) {
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size must be between 1 and %d, got %d", model.ErrInput, MaxPageSize, pageSize)
	}

	var projects []model.ProjectEntry
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))
		endpoint := fmt.Sprintf("%s/workspaces/%s/projects?%s", c.baseURL, url.PathEscape(workspaceID), q.Encode())

		body, err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK)
		if err != nil {
			return projects, fmt.Errorf("failed to fetch projects for workspace %s: %w", workspaceID, err)
		}

		var batch []model.ProjectEntry
		if err := json.Unmarshal(body, &batch); err != nil {
			return projects, fmt.Errorf("%w: failed to decode projects page %d: %v", model.ErrTransport, page, err)
		}
		if len(batch) == 0 {
			return projects, nil
		}
		projects = append(projects, batch...)
	}
}

// CreateTimeEntry submits one time entry. Only 201 Created counts as success.
// Every call creates a new entry on the service, so resubmitting duplicates it.
func (c *Client) CreateTimeEntry(ctx context.Context, workspaceID string, entry model.TimeEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode time entry: %w", err)
	}
	endpoint := fmt.Sprintf("%s/workspaces/%s/time-entries", c.baseURL, url.PathEscape(workspaceID))
	if _, err := c.do(ctx, http.MethodPost, endpoint, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, want int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTransport, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", model.ErrTransport, err)
	}
	slog.Debug("clockify request", "method", method, "path", req.URL.Path, "status", resp.StatusCode)

	if resp.StatusCode != want {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
