package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withOverrides(o Overrides) *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		API: API{
			BaseURL: o.BaseURL,
		},
		Storage: Storage{
			DB: DB{DSN: o.DBPath},
		},
		Cache: Cache{
			Path: o.CachePath,
		},
		Workers: Workers{
			SyncInterval: o.SyncInterval,
		},
		JSONFilePath: o.JSONFilePath,
	})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		API: API{
			BaseURL:        "https://story-api.dicoding.dev/v1",
			RequestTimeout: 15 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "storyshare.db"},
		},
		Cache: Cache{
			Path:    "storyshare-cache.db",
			Version: "storyshare-v1",
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
			MaxRetries:   10,
		},
	})
	return b
}
