package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files.
type StructuredJSONConfig struct {
	App struct {
		SubmitDelay *Duration `json:"submit_delay"`
		CatalogPath string   `json:"catalog_path"`
		LogPath     string   `json:"log_path"`
		Version     string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DSN       string `json:"dsn"`
		KeyPrefix string `json:"key_prefix"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CatalogPath: jsonCfg.App.CatalogPath,
			LogPath:     jsonCfg.App.LogPath,
			Version:     jsonCfg.App.Version,
		},
		Storage: Storage{
			DSN:       jsonCfg.Storage.DSN,
			KeyPrefix: jsonCfg.Storage.KeyPrefix,
		},
	}

	if jsonCfg.App.SubmitDelay != nil {
		d := time.Duration(*jsonCfg.App.SubmitDelay)
		cfg.App.SubmitDelay = &d
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "800ms" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
