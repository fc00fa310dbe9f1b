package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags parses client command-line flags from args.
//
// Flags:
//
//	-d            storage DSN (file path, ":memory:", postgres:// or redis:// URL)
//	-key-prefix   prefix for every persisted key
//	-submit-delay cosmetic auth submit delay (e.g. "800ms")
//	-catalog      path to a JSON catalog with videos and sounds
//	-log          client log file path
//	-c/-config    json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vibeclip", flag.ContinueOnError)

	var dsn, keyPrefix, catalogPath, logPath, jsonConfigPath string
	var submitDelay time.Duration

	fs.StringVar(&dsn, "d", "", "Storage DSN")
	fs.StringVar(&keyPrefix, "key-prefix", "", "Prefix for persisted keys")
	fs.DurationVar(&submitDelay, "submit-delay", 0, "Auth submit delay (e.g., 800ms)")
	fs.StringVar(&catalogPath, "catalog", "", "Catalog JSON file path")
	fs.StringVar(&logPath, "log", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CatalogPath: catalogPath,
			LogPath:     logPath,
		},
		Storage: Storage{
			DSN:       dsn,
			KeyPrefix: keyPrefix,
		},
		JSONFilePath: jsonConfigPath,
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "submit-delay" {
			cfg.App.SubmitDelay = &submitDelay
		}
	})

	return cfg, nil
}
