// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

var supportedSchemes = map[string]bool{
	"postgres":   true,
	"postgresql": true,
	"redis":      true,
	"rediss":     true,
}

// validate checks invariants that hold regardless of defaults.
func (cfg *StructuredConfig) validate() error {
	if d := cfg.App.SubmitDelay; d != nil && *d < 0 {
		return fmt.Errorf("%w: submit delay must not be negative", ErrInvalidAppConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	dsn := cfg.Storage.DSN
	if strings.TrimSpace(dsn) == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if scheme, _, ok := strings.Cut(dsn, "://"); ok && !supportedSchemes[strings.ToLower(scheme)] {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidStorageConfigs, scheme)
	}

	if cfg.App.SubmitDelay < 0 {
		return fmt.Errorf("%w: submit delay must not be negative", ErrInvalidAppConfigs)
	}

	return nil
}
