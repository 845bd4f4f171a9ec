package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"solarscope/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCfg(baseURL, token string) config.Cfg {
	return config.Cfg{
		Upstream: config.UpstreamCfg{
			BaseURL: baseURL,
			Token:   token,
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheCfg{TTL: time.Minute},
	}
}

func TestClientGet(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"bodies":[]}`))
	}))
	defer ts.Close()

	c := New(testCfg(ts.URL, "secret"), nil)
	query := url.Values{}
	query.Set("order", "id,asc")

	body, err := c.Get(context.Background(), "bodies", query)
	require.NoError(t, err)
	assert.Equal(t, `{"bodies":[]}`, string(body))
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/bodies", gotPath)
	assert.Contains(t, gotQuery, "order=")
}

func TestClientGetNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(testCfg(ts.URL, ""), nil)
	_, err := c.Get(context.Background(), "knowncount", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(testCfg(ts.URL, ""), nil)
	_, err := c.Get(context.Background(), "bodies", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(testCfg(ts.URL, ""), nil)
	_, err := c.Get(context.Background(), "bodies/nope", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestAPIErrorMessages(t *testing.T) {
	assert.Contains(t, (&APIError{StatusCode: 401}).Error(), "SOLAR_API_TOKEN")
	assert.Contains(t, (&APIError{StatusCode: 404}).Error(), "not found")
	assert.Contains(t, (&APIError{StatusCode: 429}).Error(), "rate limit")
	assert.Contains(t, (&APIError{StatusCode: 503}).Error(), "503")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Error: resource not found.", Describe(&APIError{StatusCode: 404}))
	assert.Equal(t, "Error: request timed out. Please try again.", Describe(context.DeadlineExceeded))
	assert.Equal(t, "Error: upstream request failed.", Describe(assert.AnError))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 429, StatusCode(&APIError{StatusCode: 429}))
	assert.Equal(t, 502, StatusCode(assert.AnError))
}
