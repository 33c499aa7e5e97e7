// Package content retrieves GOV.UK content-API documents for the
// per-benefit scrapers. Fetches carry a bounded timeout and no retry
// policy: a failed or timed-out fetch is fatal to the sync run.
package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openbenefits/ratesync/pkg/errors"
)

// DefaultBaseURL is the production GOV.UK content API.
const DefaultBaseURL = "https://www.gov.uk/api/content"

// DefaultTimeout bounds each document fetch.
const DefaultTimeout = 30 * time.Second

// Client fetches content documents for canonical GOV.UK paths.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the content API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// NewClient creates a content client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the content document for a canonical path such as
// "attendance-allowance". A transport failure, timeout, or non-2xx
// response yields a FetchError; the error is not recovered here, it
// propagates to the aggregation boundary.
func (c *Client) Fetch(ctx context.Context, path string) (*Document, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapFetch(path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapFetch(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewFetchError(path, resp.StatusCode, "unexpected response status", nil)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.NewParseError("json", path, "decoding content document", err)
	}
	return &doc, nil
}
