// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package catalog provides the read-only videos and sounds shown by the
// client. A demo catalog is compiled into the binary; a JSON file with the
// same layout can replace it.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/models"
)

//go:embed demo.json
var demoCatalog []byte

type catalogFile struct {
	Videos []models.Video `json:"videos"`
	Sounds []models.Sound `json:"sounds"`
}

// Catalog is an immutable set of videos and sounds.
type Catalog struct {
	videos []models.Video
	sounds []models.Sound
}

// Demo returns the built-in catalog.
func Demo() *Catalog {
	c, err := Parse(demoCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded demo is broken: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path yields [Demo].
func Load(path string, log *logger.Logger) (*Catalog, error) {
	if path == "" {
		log.Debug().Str("func", "catalog.Load").Msg("using built-in demo catalog")
		return Demo(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadingCatalog, path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log.Info().Str("func", "catalog.Load").
		Str("path", path).
		Int("videos", len(c.videos)).
		Int("sounds", len(c.sounds)).
		Msg("catalog loaded")
	return c, nil
}

// Parse decodes and checks a catalog document. Every record needs a non-empty
// id that is unique within its kind.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc catalogFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingCatalog, err)
	}

	seen := make(map[string]struct{}, len(doc.Videos))
	for i, v := range doc.Videos {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: video #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate video id %q", ErrInvalidCatalog, v.ID)
		}
		if v.Likes < 0 {
			return nil, fmt.Errorf("%w: video %q has negative likes", ErrInvalidCatalog, v.ID)
		}
		seen[v.ID] = struct{}{}
	}

	clear(seen)
	for i, s := range doc.Sounds {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: sound #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate sound id %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return &Catalog{videos: doc.Videos, sounds: doc.Sounds}, nil
}

// Videos returns a copy of the videos in catalog order.
func (c *Catalog) Videos() []models.Video {
	out := make([]models.Video, len(c.videos))
	copy(out, c.videos)
	return out
}

// Sounds returns a copy of the sounds in catalog order.
func (c *Catalog) Sounds() []models.Sound {
	out := make([]models.Sound, len(c.sounds))
	copy(out, c.sounds)
	return out
}
