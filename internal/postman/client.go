package postman

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the Postman API endpoint.
const DefaultBaseURL = "https://api.getpostman.com"

const defaultTimeout = 30 * time.Second

// Client is a read-only client for the Postman API. All calls are plain
// GETs authenticated by the profile's API key; non-2xx responses surface
// as *APIError with no retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     hclog.Logger
}

// Option configures the Client.
type Option func(*Client)

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// get issues one GET and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("postman api call",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// workspaceQuery builds the optional workspace filter shared by the
// collection and environment listings.
func workspaceQuery(workspaceID string) url.Values {
	if workspaceID == "" {
		return nil
	}
	return url.Values{"workspace": []string{workspaceID}}
}

// GetMe returns the user that owns the active API key.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/me", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// ListWorkspaces returns all accessible workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var envelope struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.get(ctx, "/workspaces", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Workspaces, nil
}

// GetWorkspace returns one workspace with its nested collection and
// environment summaries.
func (c *Client) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	var envelope struct {
		Workspace Workspace `json:"workspace"`
	}
	if err := c.get(ctx, "/workspaces/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Workspace, nil
}

// ListCollections returns collection summaries, optionally scoped to a
// workspace.
func (c *Client) ListCollections(ctx context.Context, workspaceID string) ([]CollectionSummary, error) {
	var envelope struct {
		Collections []CollectionSummary `json:"collections"`
	}
	if err := c.get(ctx, "/collections", workspaceQuery(workspaceID), &envelope); err != nil {
		return nil, err
	}
	return envelope.Collections, nil
}

// GetCollection returns the full collection document including its item
// tree.
func (c *Client) GetCollection(ctx context.Context, uid string) (*Collection, error) {
	var envelope struct {
		Collection Collection `json:"collection"`
	}
	if err := c.get(ctx, "/collections/"+url.PathEscape(uid), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Collection, nil
}

// ListEnvironments returns environment summaries, optionally scoped to a
// workspace.
func (c *Client) ListEnvironments(ctx context.Context, workspaceID string) ([]EnvironmentSummary, error) {
	var envelope struct {
		Environments []EnvironmentSummary `json:"environments"`
	}
	if err := c.get(ctx, "/environments", workspaceQuery(workspaceID), &envelope); err != nil {
		return nil, err
	}
	return envelope.Environments, nil
}

// GetEnvironment returns one environment with its variables.
func (c *Client) GetEnvironment(ctx context.Context, id string) (*Environment, error) {
	var envelope struct {
		Environment Environment `json:"environment"`
	}
	if err := c.get(ctx, "/environments/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Environment, nil
}
