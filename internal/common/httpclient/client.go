package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/errors"
)

// Client wraps http.Client with a fixed User-Agent and body size limit.
type Client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithMaxBody(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		maxBody: 10 << 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the URL and returns the response body. Non-2xx statuses
// are returned as StandardError so callers can check retryability.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchFailedError(fmt.Sprintf("build request for %s", url), err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewFetchTimeoutError(url)
		}
		return nil, errors.NewFetchFailedError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, errors.NewSourceUnavailableError(url, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, errors.NewUnexpectedContentError(url, fmt.Sprintf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, errors.NewFetchFailedError(fmt.Sprintf("read body from %s", url), err)
	}
	return body, nil
}

// GetWithContentType fetches the URL and also reports the Content-Type header.
func (c *Client) GetWithContentType(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.NewFetchFailedError(fmt.Sprintf("build request for %s", url), err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, "", errors.NewFetchTimeoutError(url)
		}
		return nil, "", errors.NewFetchFailedError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, "", errors.NewSourceUnavailableError(url, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, "", errors.NewUnexpectedContentError(url, fmt.Sprintf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, "", errors.NewFetchFailedError(fmt.Sprintf("read body from %s", url), err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
