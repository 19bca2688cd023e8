// Package jira provides JIRA integration for fetching the current user's
// open issues as time entry descriptions.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/oauth2"

	"github.com/bryan-cox/clockfill/internal/model"
)

// DefaultJQL selects unresolved issues assigned to the authenticated user.
const DefaultJQL = "assignee=currentUser() AND status!=Done"

// StatusError is returned when JIRA answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("JIRA API returned status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Unwrap classifies status errors as transport errors.
func (e *StatusError) Unwrap() error {
	return model.ErrTransport
}

// issueResponse represents one issue in a JIRA API response.
type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

// searchResponse represents the response from the JIRA search API.
type searchResponse struct {
	Issues []issueResponse `json:"issues"`
}

// Regex patterns for extracting JIRA ticket IDs.
var (
	ticketRegex = regexp.MustCompile(`\b([A-Z][A-Z0-9]+-\d+)\b`)
	urlRegex    = regexp.MustCompile(`https?://[^\s/]+/browse/([A-Z][A-Z0-9]+-\d+)`)
)

// ExtractTicketID extracts a JIRA ticket ID from a URL or text.
func ExtractTicketID(input string) string {
	// First try to extract from URL
	if matches := urlRegex.FindStringSubmatch(input); len(matches) > 1 {
		return matches[1]
	}

	// Then try to extract from plain text
	if matches := ticketRegex.FindStringSubmatch(input); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// Client queries one JIRA instance.
type Client struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client
}

// NewBasicClient authenticates with Basic auth (username and API token).
func NewBasicClient(baseURL, username, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		token:      token,
		httpClient: httpClient,
	}
}

// NewTokenClient authenticates with a personal access token sent as a
// Bearer token. base supplies the transport and timeout; it may be nil.
func NewTokenClient(ctx context.Context, baseURL, pat string, base *http.Client) *Client {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: pat,
		TokenType:   "Bearer",
	}))
	if base != nil {
		hc.Timeout = base.Timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// FetchOpenIssues runs a JQL search and returns the matching issues with
// their summaries. An empty jql uses DefaultJQL.
func (c *Client) FetchOpenIssues(ctx context.Context, jql string) ([]model.Issue, error) {
	if jql == "" {
		jql = DefaultJQL
	}
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("fields", "summary")

	var resp searchResponse
	if err := c.get(ctx, c.baseURL+"/rest/api/2/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	issues := make([]model.Issue, 0, len(resp.Issues))
	for _, is := range resp.Issues {
		issues = append(issues, model.Issue{Key: is.Key, Summary: is.Fields.Summary})
	}
	return issues, nil
}

// FetchIssue fetches a single issue's summary.
func (c *Client) FetchIssue(ctx context.Context, key string) (model.Issue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s?fields=summary", c.baseURL, url.PathEscape(key))
	var resp issueResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return model.Issue{Key: key}, fmt.Errorf("failed to fetch issue %s: %w", key, err)
	}
	return model.Issue{Key: resp.Key, Summary: resp.Fields.Summary}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" || c.token != "" {
		req.SetBasicAuth(c.username, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %v", model.ErrTransport, err)
	}
	slog.Debug("jira request", "path", req.URL.Path, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", model.ErrTransport, err)
	}
	return nil
}

// FindIssue returns the issue with key from issues.
func FindIssue(issues []model.Issue, key string) (model.Issue, bool) {
	for _, is := range issues {
		if strings.EqualFold(is.Key, key) {
			return is, true
		}
	}
	return model.Issue{}, false
}

// Describe turns a free-text description into the label of the issue it
// names. Text that is not a bare ticket ID is returned unchanged. The issue
// is taken from issues when present, otherwise fetched with c when c is
// not nil. A failed lookup falls back to the original text.
func Describe(ctx context.Context, c *Client, issues []model.Issue, text string) string {
	text = strings.TrimSpace(text)
	key := ExtractTicketID(text)
	if key == "" || key != text {
		return text
	}
	if is, ok := FindIssue(issues, key); ok {
		return is.Label()
	}
	if c == nil {
		return text
	}
	is, err := c.FetchIssue(ctx, key)
	if err != nil {
		slog.Warn("failed to fetch JIRA ticket summary", "ticket", key, "error", err)
		return text
	}
	return is.Label()
}
