// Package api provides the HTTP client for the kabu backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8000/api/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// TokenSource yields the current bearer credential, or "" when none is held.
type TokenSource func() string

// Client performs JSON request/response round trips against the backend.
// Every call is independent: no retry, no caching, no deduplication.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *common.Logger
	limiter     *rate.Limiter
	tokenSource TokenSource
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the client-side rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new backend client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetTokenSource wires the source of the stored bearer credential. Set after
// construction because the session store that owns the credential is built
// on top of this client.
func (c *Client) SetTokenSource(source TokenSource) {
	c.tokenSource = source
}

// APIError reports a non-2xx backend response.
type APIError struct {
	Status   int
	Detail   string
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kabu API error: %s (status: %d, endpoint: %s)", e.Detail, e.Status, e.Endpoint)
}

// NetworkError reports a request that obtained no HTTP response at all.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("kabu network error: %v (endpoint: %s)", e.Err, e.Endpoint)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorPayload is the backend's error body shape: {"detail": "..."}.
type errorPayload struct {
	Detail string `json:"detail"`
}

// do performs a rate-limited JSON round trip. An empty bearer means the
// request goes out unauthenticated.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		detail := string(bytes.TrimSpace(raw))
		var payload errorPayload
		if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
			detail = payload.Detail
		}
		return &APIError{Status: resp.StatusCode, Detail: detail, Endpoint: path}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// bearer returns the stored credential, if a token source is wired.
func (c *Client) bearer() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// Get performs an authenticated GET and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, c.bearer(), nil, result)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, c.bearer(), body, result)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, c.bearer(), body, result)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, c.bearer(), nil, nil)
}

// Login exchanges credentials for a token bundle.
func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthTokens, error) {
	var tokens models.AuthTokens
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, creds models.RegisterCredentials) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the user owning the given access token.
func (c *Client) Profile(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPortfolio retrieves all holdings for the authenticated user.
func (c *Client) GetPortfolio(ctx context.Context) ([]*models.Portfolio, error) {
	var items []*models.Portfolio
	if err := c.Get(ctx, "/portfolio", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Ensure Client implements the consumed contracts.
var (
	_ interfaces.AuthAPI      = (*Client)(nil)
	_ interfaces.PortfolioAPI = (*Client)(nil)
)
