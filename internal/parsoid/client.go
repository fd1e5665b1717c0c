// Package parsoid fetches rendered page HTML from a MediaWiki REST endpoint.
package parsoid

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const acceptHTML = `text/html; charset=utf-8; profile="https://www.mediawiki.org/wiki/Specs/HTML/2.1.0"`

// Page is the HTML of one page revision.
type Page struct {
	HTML []byte
	// Revision is taken from the response ETag, or "" when absent.
	Revision string
}

// Client talks to a Parsoid-backed REST API. The base URL may contain a
// "{domain}" placeholder, filled in per request.
type Client struct {
	baseURL    string
	maxBytes   int64
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, maxBytes int64, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		backoff: Backoff,
		log:     log,
	}
}

// PageURL returns the HTML endpoint for a title and optional revision.
func (c *Client) PageURL(domain, title, revision string) string {
	u := strings.ReplaceAll(c.baseURL, "{domain}", domain) + "/page/html/" + url.PathEscape(title)
	if revision != "" {
		u += "/" + url.PathEscape(revision)
	}
	return u
}

// FetchHTML fetches a page's HTML, retrying transient failures.
func (c *Client) FetchHTML(ctx context.Context, domain, title, revision string) (*Page, error) {
	var page *Page
	var lastErr error
	for attempt := range MaxRetries {
		page, lastErr = c.fetchOnce(ctx, domain, title, revision)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		c.log.Warn("retryable fetch error", "domain", domain, "title", title, "attempt", attempt, "error", lastErr)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return page, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, domain, title, revision string) (*Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(domain, title, revision), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", acceptHTML)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch page html: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", title, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch page html %s: status %d: %s", title, resp.StatusCode, string(respBody))
	}

	var body io.Reader = resp.Body
	if c.maxBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("page html exceeds %d bytes", c.maxBytes)
	}

	return &Page{
		HTML:     data,
		Revision: RevisionFromETag(resp.Header.Get("ETag")),
	}, nil
}

// RevisionFromETag extracts the revision id from an ETag of the form
// W/"123456/uuid". It returns "" when the tag carries no numeric revision.
func RevisionFromETag(etag string) string {
	etag = strings.TrimPrefix(strings.TrimSpace(etag), "W/")
	etag = strings.Trim(etag, `"`)
	rev, _, _ := strings.Cut(etag, "/")
	if _, err := strconv.ParseUint(rev, 10, 64); err != nil {
		return ""
	}
	return rev
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
