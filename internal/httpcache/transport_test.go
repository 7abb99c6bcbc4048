package httpcache

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyshare/storyshare/internal/logger"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

var errNetworkDown = errors.New("dial tcp: connection refused")

func okResponse(req *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

const apiHost = "story-api.dicoding.dev"

func TestTransport_NetworkFirst_CachesAndReturnsLive(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	calls := 0
	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return okResponse(req, `{"listStory":[]}`), nil
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://story-api.dicoding.dev/v1/stories?location=1", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, `{"listStory":[]}`, readBody(t, resp))
	assert.Empty(t, resp.Header.Get("X-Cache"), "live responses are not marked as cache hits")
	assert.Equal(t, 1, calls)

	entry, err := store.Get("GET https://story-api.dicoding.dev/v1/stories?location=1")
	require.NoError(t, err)
	assert.Equal(t, `{"listStory":[]}`, string(entry.Body))
}

func TestTransport_NetworkFirst_FallsBackToCacheOnFailure(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	online := true
	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if !online {
			return nil, errNetworkDown
		}
		return okResponse(req, `{"listStory":[{"id":"story-1"}]}`), nil
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://story-api.dicoding.dev/v1/stories?location=1", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	readBody(t, resp)

	online = false
	resp, err = transport.RoundTrip(req)
	require.NoError(t, err, "cached response must be served instead of the failure")
	assert.Equal(t, `{"listStory":[{"id":"story-1"}]}`, readBody(t, resp))
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
}

func TestTransport_NetworkFirst_NoCacheEntryPropagatesFailure(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errNetworkDown
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://story-api.dicoding.dev/v1/stories", nil)
	_, err := transport.RoundTrip(req)
	require.ErrorIs(t, err, errNetworkDown)
}

func TestTransport_NonReadMethodsPassThroughUncached(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return okResponse(req, `{"message":"Story created"}`), nil
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "https://story-api.dicoding.dev/v1/stories", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	readBody(t, resp)

	_, err = store.Get("POST https://story-api.dicoding.dev/v1/stories")
	require.ErrorIs(t, err, ErrCacheMiss, "writes must never be cached")

	// and a later POST while offline must propagate the failure, not serve
	// any cached content
	failing := NewTransport(store, apiHost, roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errNetworkDown
	}), logger.Nop())

	req = httptest.NewRequest(http.MethodPost, "https://story-api.dicoding.dev/v1/stories", nil)
	_, err = failing.RoundTrip(req)
	require.ErrorIs(t, err, errNetworkDown)
}

func TestTransport_CacheFirst_ServesCachedCopyWithoutNetwork(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	calls := 0
	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return okResponse(req, "console.log('bundle')"), nil
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://app.example.com/app.bundle.js", nil)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "console.log('bundle')", readBody(t, resp))
	assert.Equal(t, 1, calls)

	resp, err = transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "console.log('bundle')", readBody(t, resp))
	assert.Equal(t, 1, calls, "second request must be answered from cache")
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
}

func TestTransport_CacheFirst_DoesNotCacheErrorResponses(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewReader([]byte("not found"))),
			Request:    req,
		}, nil
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://app.example.com/missing.png", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readBody(t, resp)

	_, err = store.Get("GET https://app.example.com/missing.png")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestTransport_CacheFirst_NavigationFallbackPage(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errNetworkDown
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://app.example.com/index.html", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Anda sedang offline")
	assert.Equal(t, "FALLBACK", resp.Header.Get("X-Cache"))
}

func TestTransport_CacheFirst_NonNavigationGetsServiceUnavailable(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errNetworkDown
	})

	transport := NewTransport(store, apiHost, base, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "https://app.example.com/favicon.png", nil)
	req.Header.Set("Accept", "image/png")

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	readBody(t, resp)
}
