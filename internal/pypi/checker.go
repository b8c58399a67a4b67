// Package pypi queries the PyPI package index to verify that package names
// exist before they are written into a manifest. Outcomes are classified
// into three distinct states: a definitive hit, a definitive miss (HTTP
// 404), and a transient check failure (network errors and every other HTTP
// status). Transient failures are never folded into "not found" so callers
// can decide whether to keep a package they could not verify.
package pypi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Client configuration defaults.
const (
	DefaultBaseURL        = "https://pypi.org"
	DefaultRequestTimeout = 10 * time.Second
)

// Status classifies the outcome of a single existence check.
type Status string

const (
	// Exists means the index returned a 2xx response for the package.
	Exists Status = "exists"

	// NotFound means the index returned 404: the name is not registered.
	NotFound Status = "not-found"

	// CheckFailed means the check could not be completed: network error,
	// timeout, or an HTTP status other than 2xx/404. It is not evidence
	// of absence.
	CheckFailed Status = "check-failed"
)

// Result holds the classified outcome of one existence check.
type Result struct {
	Name   string
	Status Status

	// LatestVersion is the newest release reported by the index metadata,
	// populated only when Status is Exists and the response carried it.
	LatestVersion string

	// Err carries the underlying cause when Status is CheckFailed.
	Err error
}

// Checker performs at-most-one index request per package name. Retry
// policy, if any, belongs to the caller.
type Checker struct {
	baseURL string
	client  *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at a different index host, e.g. a
// private mirror or an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Checker) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithTimeout sets a custom request timeout. Zero or negative values fall
// back to the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.client.Timeout = timeout
		} else {
			c.client.Timeout = DefaultRequestTimeout
		}
	}
}

// NewChecker creates a Checker against the public PyPI index unless
// overridden by options.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the index base URL.
func (c *Checker) BaseURL() string {
	return c.baseURL
}

// Check queries the JSON metadata endpoint for name and classifies the
// outcome. It never returns a Go error: transport failures are part of
// the domain result (CheckFailed with the cause attached).
func (c *Checker) Check(ctx context.Context, name string) Result {
	endpoint := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Result{Name: name, Status: CheckFailed, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Name: name, Status: CheckFailed, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		res := Result{Name: name, Status: Exists}
		if readErr == nil {
			res.LatestVersion = gjson.GetBytes(body, "info.version").String()
		}
		return res
	case resp.StatusCode == http.StatusNotFound:
		return Result{Name: name, Status: NotFound}
	default:
		return Result{
			Name:   name,
			Status: CheckFailed,
			Err:    fmt.Errorf("unexpected HTTP %d from %s", resp.StatusCode, c.baseURL),
		}
	}
}

// DefaultDenylist lists names that are never accepted into a manifest
// regardless of the existence-check result: the package manager's own
// bootstrap tooling.
func DefaultDenylist() []string {
	return []string{"pip", "pip3", "setuptools", "wheel"}
}

// Denied reports whether name appears in the denylist (case-insensitive).
func Denied(name string, denylist []string) bool {
	for _, d := range denylist {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return false
}
