// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package config

import (
	"net/url"
	"strings"
)

// validate checks that the final merged [ClientConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.API.BaseURL == "" || cfg.API.RequestTimeout <= 0 {
		return ErrInvalidAPIConfigs
	}
	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Host == "" {
		return ErrInvalidAPIConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Cache.Path == "" || !strings.Contains(cfg.Cache.Version, "-v") {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.MaxRetries < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
