// Package upstream talks to the external library catalog that knows
// real-time item status. Record pages are fetched as opaque text; callers
// decide availability by matching markers in the body.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cowguru2000/scili-dvds/internal/domain"
)

const defaultLookupTimeout = 10 * time.Second

// maxRecordPageBytes bounds how much of a record page is read. The markers
// appear in the item status table well within this.
const maxRecordPageBytes = 1 << 20

// Client fetches record pages from the upstream catalog over plain HTTP GET
// against a fixed URL template.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the catalog at baseURL. Each lookup carries
// a bounded timeout so one hung upstream call cannot stall a whole
// resolution batch.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultLookupTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

// WithTimeout overrides the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// FetchRecordPage retrieves the record page for one call number. Transport
// failures and non-2xx statuses are reported as
// domain.ErrUpstreamUnavailable; the body is never inspected in those
// cases. Call numbers are sanitized to [A-Za-z0-9] before reaching here, so
// plain concatenation into the URL is safe.
func (c *Client) FetchRecordPage(ctx context.Context, callNumber string) (string, error) {
	url := c.baseURL + "/record=" + callNumber
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build record request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnavailable, err)
	}
	return string(body), nil
}
