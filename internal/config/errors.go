package config

import "errors"

// Validation errors returned when the merged configuration is unusable.
var (
	// ErrInvalidStorageConfigs indicates an unusable storage DSN (for example,
	// an unsupported URL scheme).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a negative submit delay).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
