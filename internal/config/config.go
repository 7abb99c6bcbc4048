// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// storyshare client. It aggregates all sub-configurations and is populated by
// merging values from command-line overrides, environment variables, an
// optional JSON file, and built-in defaults (in that priority order).
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// API holds the remote StoryShare service settings.
	API API `envPrefix:"API_"`

	// Storage holds configuration for the local persistence backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds the network response cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from overrides and environment variables.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// API holds settings for the remote StoryShare REST service.
type API struct {
	// BaseURL is the service endpoint, e.g. "https://story-api.dicoding.dev/v1".
	// Env: API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound requests
	// (e.g. "15s", "1m").
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (created on first run).
	// Env: STORAGE_DB_PATH
	DSN string `env:"PATH"`
}

// Cache holds settings for the persistent network response cache.
type Cache struct {
	// Path is the bbolt file backing the response cache.
	// Env: CACHE_PATH
	Path string `env:"PATH"`

	// Version is the cache generation tag (e.g. "storyshare-v1"). When the
	// tag changes, every previously stored generation is deleted in full on
	// activation.
	// Env: CACHE_VERSION
	Version string `env:"VERSION"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the reconciliation job wakes up on its
	// own, independent of explicit triggers.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// MaxRetries caps how many failed attempts a pending submission with an
	// authentication failure survives before it is abandoned. Zero means no
	// cap.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Overrides carries the command-line flag values that take precedence over
// every other configuration source. Zero-valued fields are ignored.
type Overrides struct {
	BaseURL      string
	DBPath       string
	CachePath    string
	SyncInterval time.Duration
	JSONFilePath string
}

// ClientAPI holds the validated remote service settings used by the client
// transport layer.
type ClientAPI struct {
	// BaseURL is the remote service endpoint.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientCache groups response cache settings.
type ClientCache struct {
	// Path is the bbolt cache file.
	Path string
	// Version is the active cache generation tag.
	Version string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the reconciliation job runs.
	SyncInterval time.Duration
	// MaxRetries caps retries for submissions failing with auth errors.
	MaxRetries int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// API contains remote service settings.
	API ClientAPI
	// Storage contains client storage settings.
	Storage ClientStorage
	// Cache contains response cache settings.
	Cache ClientCache
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Command-line overrides
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig(overrides Overrides) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		API: ClientAPI{
			BaseURL:        cfg.API.BaseURL,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Cache: ClientCache{
			Path:    cfg.Cache.Path,
			Version: cfg.Cache.Version,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			MaxRetries:   cfg.Workers.MaxRetries,
		},
	}

	return clientCfg, clientCfg.validate()
}
