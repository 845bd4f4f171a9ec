package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"solarscope/internal/cache"
	"solarscope/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Client fetches from the Solar System API. Responses are read through the
// cache when one is configured; transient failures are retried with
// exponential backoff.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	cache   *cache.Cache
	ttl     time.Duration
}

func New(cfg config.Cfg, c *cache.Cache) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Upstream.Timeout},
		baseURL: cfg.Upstream.BaseURL,
		token:   cfg.Upstream.Token,
		cache:   c,
		ttl:     cfg.Cache.TTL,
	}
}

// Get fetches endpoint with the given query and returns the raw body.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if body, ok := c.cache.Get(ctx, u); ok {
		log.Debug().Str("url", u).Msg("upstream cache hit")
		return body, nil
	}

	var body []byte
	op := func() error {
		var err error
		body, err = c.fetch(ctx, u)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		log.Error().Str("url", u).Err(err).Msg("upstream request failed")
		return nil, err
	}

	c.cache.Set(ctx, u, body, c.ttl)
	return body, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "solarscope")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().Str("url", u).Msg("fetching from upstream")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode, Body: string(body)}
		if res.StatusCode >= 500 || res.StatusCode == 429 {
			return nil, apiErr // retried
		}
		return nil, backoff.Permanent(apiErr)
	}

	log.Debug().Str("url", u).Int("body_length", len(body)).Msg("received upstream response")
	return body, nil
}
