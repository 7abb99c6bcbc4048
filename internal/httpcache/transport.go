// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

// Package httpcache intermediates every outgoing HTTP request behind a
// request-class-specific caching policy: remote-API reads are network-first
// with a cached fallback, everything else is cache-first with an offline
// fallback page. Cached responses survive restarts in a bbolt file organized
// by cache generation.
package httpcache

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/storyshare/storyshare/internal/logger"
)

//go:embed offline.html
var offlinePage []byte

// Transport is a caching http.RoundTripper. Only idempotent reads (GET and
// HEAD) are ever intercepted; any other method passes straight through to
// the base transport, uncached in both directions.
type Transport struct {
	base    http.RoundTripper
	store   *Store
	apiHost string
	logger  *logger.Logger
}

// NewTransport wraps base with the caching policy. apiHost selects the
// network-first request class; base may be nil for http.DefaultTransport.
func NewTransport(store *Store, apiHost string, base http.RoundTripper, log *logger.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:    base,
		store:   store,
		apiHost: apiHost,
		logger:  log,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return t.base.RoundTrip(req)
	}

	if req.URL.Host == t.apiHost {
		return t.networkFirst(req)
	}
	return t.cacheFirst(req)
}

// networkFirst tries the live service and falls back to the most recent
// cached response for the identical request when the network is unreachable.
func (t *Transport) networkFirst(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil {
		if isCacheableSuccess(resp) {
			t.cacheResponse(req, resp)
		}
		return resp, nil
	}

	entry, cacheErr := t.store.Get(cacheKey(req))
	if cacheErr != nil {
		if !errors.Is(cacheErr, ErrCacheMiss) {
			t.logger.Err(cacheErr).
				Str("url", req.URL.String()).
				Msg("cache lookup failed during network fallback")
		}
		return nil, err
	}

	t.logger.Debug().
		Str("url", req.URL.String()).
		Msg("network unreachable, serving cached response")
	return entry.Response(req), nil
}

// cacheFirst serves a cached copy when one exists, otherwise fetches and
// opportunistically stores successful responses. When both cache and network
// fail, navigation requests get the offline fallback page and everything
// else a synthetic service-unavailable response.
func (t *Transport) cacheFirst(req *http.Request) (*http.Response, error) {
	entry, cacheErr := t.store.Get(cacheKey(req))
	if cacheErr == nil {
		return entry.Response(req), nil
	}
	if !errors.Is(cacheErr, ErrCacheMiss) {
		t.logger.Err(cacheErr).
			Str("url", req.URL.String()).
			Msg("cache lookup failed, falling through to network")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		if isNavigationRequest(req) {
			return offlineFallbackResponse(req), nil
		}
		return unavailableResponse(req), nil
	}

	if isCacheableSuccess(resp) {
		t.cacheResponse(req, resp)
	}
	return resp, nil
}

func (t *Transport) cacheResponse(req *http.Request, resp *http.Response) {
	entry, err := newEntry(resp)
	if err != nil {
		t.logger.Err(err).
			Str("url", req.URL.String()).
			Msg("failed to capture response for cache")
		return
	}

	if err := t.store.Put(cacheKey(req), entry); err != nil {
		t.logger.Err(err).
			Str("url", req.URL.String()).
			Msg("failed to store response in cache")
	}
}

func cacheKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

// isCacheableSuccess keeps only complete, successful responses out of which
// a later offline answer can be served. Redirects and error statuses are
// returned to the caller but never stored.
func isCacheableSuccess(resp *http.Response) bool {
	return resp.StatusCode == http.StatusOK
}

func isNavigationRequest(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

func offlineFallbackResponse(req *http.Request) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("X-Cache", "FALLBACK")

	return &http.Response{
		StatusCode:    http.StatusOK,
		Status:        fmt.Sprintf("%d %s", http.StatusOK, http.StatusText(http.StatusOK)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(offlinePage)),
		ContentLength: int64(len(offlinePage)),
		Request:       req,
	}
}

func unavailableResponse(req *http.Request) *http.Response {
	body := []byte("service unavailable")
	header := make(http.Header)
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Cache", "FALLBACK")

	return &http.Response{
		StatusCode:    http.StatusServiceUnavailable,
		Status:        fmt.Sprintf("%d %s", http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
