package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-d", "redis://localhost:6379/0",
		"-key-prefix", "vc_",
		"-submit-delay", "250ms",
		"-catalog", "catalog.json",
		"-log", "client.log",
		"-c", "config.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.DSN)
	assert.Equal(t, "vc_", cfg.Storage.KeyPrefix)
	require.NotNil(t, cfg.App.SubmitDelay)
	assert.Equal(t, 250*time.Millisecond, *cfg.App.SubmitDelay)
	assert.Equal(t, "catalog.json", cfg.App.CatalogPath)
	assert.Equal(t, "client.log", cfg.App.LogPath)
	assert.Equal(t, "config.json", cfg.JSONFilePath)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "alias.json"})
	require.NoError(t, err)
	assert.Equal(t, "alias.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ZeroDelayIsExplicit(t *testing.T) {
	cfg, err := parseFlags([]string{"-submit-delay", "0s"})
	require.NoError(t, err)
	require.NotNil(t, cfg.App.SubmitDelay)
	assert.Zero(t, *cfg.App.SubmitDelay)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}

func TestParseFlags_InvalidDuration(t *testing.T) {
	_, err := parseFlags([]string{"-submit-delay", "later"})
	require.Error(t, err)
}

// TestParseFlags_Repeatable verifies that every call uses a fresh flag set.
func TestParseFlags_Repeatable(t *testing.T) {
	for range 3 {
		_, err := parseFlags([]string{"-d", "a.db"})
		require.NoError(t, err)
	}
}
