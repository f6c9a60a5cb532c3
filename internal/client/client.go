package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/finder/backend/internal/api/middleware"
	"github.com/GriffinCanCode/finder/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/finder/backend/internal/shared/id"
)

// DefaultBaseURL is where the server listens with default configuration
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client talks to a Finder server
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// APIError is a non-2xx response carrying the server's {"error", "code"} body
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// NewClient creates a client for baseURL. Only idempotent GETs are retried,
// on transport errors, 429 and 5xx.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// pooled transport from retryablehttp; retries are resty's
	transport := retryablehttp.NewClient().HTTPClient.Transport

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("User-Agent", "finderctl/1.0").
		SetTransport(transport).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		AddRetryCondition(retryable)

	return &Client{
		resty:   r,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

func retryable(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	status := resp.StatusCode()
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetTimeout(d)
}

// SetRetry configures how many times failed GETs are retried
func (c *Client) SetRetry(count int, minWait, maxWait time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetRetryCount(count).
		SetRetryWaitTime(minWait).
		SetRetryMaxWaitTime(maxWait)
}

// SetRateLimit bounds outgoing requests per second; 0 disables the limit
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// request waits for the limiter and tags the request with a fresh ID
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().
		SetContext(ctx).
		SetHeader(middleware.RequestIDHeader, id.NewRequestID().String()).
		SetError(&APIError{}), nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out interface{}) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr == nil {
			apiErr = &APIError{Message: strings.TrimSpace(resp.String())}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}

// Health returns the server's health report
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Home returns the server's home directory
func (c *Client) Home(ctx context.Context) (string, error) {
	var out pathResponse
	if err := c.do(ctx, http.MethodGet, "/fs/home", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// List lists the children of path
func (c *Client) List(ctx context.Context, path string) (*filesystem.DirectoryListing, error) {
	var out filesystem.DirectoryListing
	if err := c.do(ctx, http.MethodGet, "/fs/list", map[string]string{"path": path}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info describes a single item
func (c *Client) Info(ctx context.Context, path string) (*filesystem.FileEntry, error) {
	var out filesystem.FileEntry
	if err := c.do(ctx, http.MethodGet, "/fs/info", map[string]string{"path": path}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search finds entries under path whose name contains query
func (c *Client) Search(ctx context.Context, path, query string) (*filesystem.SearchResult, error) {
	var out filesystem.SearchResult
	q := map[string]string{"path": path, "query": query}
	if err := c.do(ctx, http.MethodGet, "/fs/search", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Glob finds entries under path matching pattern
func (c *Client) Glob(ctx context.Context, path, pattern string) (*filesystem.SearchResult, error) {
	var out filesystem.SearchResult
	q := map[string]string{"path": path, "pattern": pattern}
	if err := c.do(ctx, http.MethodGet, "/fs/glob", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Preview fetches the display encoding of a file
func (c *Client) Preview(ctx context.Context, path string) (*filesystem.FilePreview, error) {
	var out filesystem.FilePreview
	if err := c.do(ctx, http.MethodGet, "/fs/preview", map[string]string{"path": path}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFolder creates name inside parent and returns its path
func (c *Client) CreateFolder(ctx context.Context, parent, name string) (string, error) {
	var out pathResponse
	body := map[string]string{"path": parent, "name": name}
	if err := c.do(ctx, http.MethodPost, "/fs/folders", nil, body, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// Delete removes path, recursively for directories
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, "/fs/items", map[string]string{"path": path}, nil, nil)
}

// Rename renames path within its parent and returns the new path
func (c *Client) Rename(ctx context.Context, path, newName string) (string, error) {
	var out pathResponse
	body := map[string]string{"path": path, "new_name": newName}
	if err := c.do(ctx, http.MethodPost, "/fs/rename", nil, body, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// Copy copies source into destination and returns the new path
func (c *Client) Copy(ctx context.Context, source, destination string) (string, error) {
	return c.transfer(ctx, "/fs/copy", source, destination)
}

// Move moves source into destination and returns the new path
func (c *Client) Move(ctx context.Context, source, destination string) (string, error) {
	return c.transfer(ctx, "/fs/move", source, destination)
}

func (c *Client) transfer(ctx context.Context, route, source, destination string) (string, error) {
	var out pathResponse
	body := map[string]string{"source": source, "destination": destination}
	if err := c.do(ctx, http.MethodPost, route, nil, body, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

type pathResponse struct {
	Path string `json:"path"`
}
