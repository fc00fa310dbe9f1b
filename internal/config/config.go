// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Defaults applied by [GetClientConfig] when a source leaves a field empty.
const (
	// DefaultDSN is a SQLite database file in the working directory.
	DefaultDSN = "vibeclip.db"

	// DefaultSubmitDelay is the cosmetic latency applied before an auth form
	// submission is accepted.
	DefaultSubmitDelay = 800 * time.Millisecond
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds presentation and runtime settings.
	App App `envPrefix:"APP_"`

	// Storage holds the persistent key-value store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// SubmitDelay is the artificial delay before a login or registration
	// submission is handed to the session service (e.g. "800ms"). Nil means
	// unset and falls back to [DefaultSubmitDelay]; "0s" disables the delay.
	// Env: APP_SUBMIT_DELAY
	SubmitDelay *time.Duration `env:"SUBMIT_DELAY"`

	// CatalogPath points to a JSON file with videos and sounds. When empty the
	// built-in demo catalog is used.
	// Env: APP_CATALOG_PATH
	CatalogPath string `env:"CATALOG_PATH"`

	// LogPath is the client log file. When empty the log is written next to
	// the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// Version overrides the version string shown in the TUI.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage holds settings for the persistent key-value store.
type Storage struct {
	// DSN selects and configures the backend:
	//   - ":memory:" or "memory"          : process memory, nothing survives exit;
	//   - a path ending in ".json"        : single JSON document on disk;
	//   - "postgres://…", "postgresql://…": PostgreSQL table;
	//   - "redis://…", "rediss://…"       : Redis strings;
	//   - any other path                  : SQLite database file.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// KeyPrefix is prepended to every persisted key.
	// Env: STORAGE_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// ClientApp is the client view of [App] with defaults applied.
type ClientApp struct {
	SubmitDelay time.Duration
	CatalogPath string
	LogPath     string
	Version     string
}

// ClientStorage is the client view of [Storage] with defaults applied.
type ClientStorage struct {
	DSN       string
	KeyPrefix string
}

// ClientConfig is the configuration consumed by the client runtime.
type ClientConfig struct {
	App     ClientApp
	Storage ClientStorage
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}

// GetClientConfig builds and validates the client configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// Redacted returns a copy that is safe to log: the password of a URL DSN is
// masked.
func (cfg ClientConfig) Redacted() ClientConfig {
	if u, err := url.Parse(cfg.Storage.DSN); err == nil && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			cfg.Storage.DSN = u.Redacted()
		}
	}
	return cfg
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			SubmitDelay: DefaultSubmitDelay,
			CatalogPath: cfg.App.CatalogPath,
			LogPath:     cfg.App.LogPath,
			Version:     cfg.App.Version,
		},
		Storage: ClientStorage{
			DSN:       cfg.Storage.DSN,
			KeyPrefix: cfg.Storage.KeyPrefix,
		},
	}

	if clientCfg.Storage.DSN == "" {
		clientCfg.Storage.DSN = DefaultDSN
	}
	if cfg.App.SubmitDelay != nil {
		clientCfg.App.SubmitDelay = *cfg.App.SubmitDelay
	}

	return clientCfg
}
