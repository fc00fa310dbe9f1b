package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/MKhiriev/vibeclip/internal/logger"
)

// fileKeyValueStore keeps every key in memory and rewrites the whole JSON
// file after each mutation.
type fileKeyValueStore struct {
	path   string
	logger *logger.Logger

	mu    sync.RWMutex
	items map[string]string
}

type filePersistedState struct {
	Items map[string]string `json:"items"`
}

// NewFileKeyValueStore opens (or lazily creates) the JSON file at path.
// An unreadable file is logged and treated as empty; it is replaced on the
// next write.
func NewFileKeyValueStore(path string, log *logger.Logger) (KeyValueStore, error) {
	s := &fileKeyValueStore{
		path:   path,
		logger: log,
		items:  make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileKeyValueStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %w", ErrFileStorage, s.path, err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("storage file is unreadable, starting empty")
		return nil
	}

	if st.Items != nil {
		s.items = st.Items
	}
	return nil
}

// persist writes to a temp file and renames it over the target so a crash
// never leaves a half-written file.
func (s *fileKeyValueStore) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create dir: %w", ErrFileStorage, err)
		}
	}

	payload, err := json.MarshalIndent(filePersistedState{Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrFileStorage, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrFileStorage, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %w", ErrFileStorage, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %w", ErrFileStorage, err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace file: %w", ErrFileStorage, err)
	}

	return nil
}

func (s *fileKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (s *fileKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.items[key]
	s.items[key] = string(value)
	if err := s.persist(); err != nil {
		if existed {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *fileKeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.items[key]
	if !existed {
		return nil
	}

	delete(s.items, key)
	if err := s.persist(); err != nil {
		s.items[key] = prev
		return err
	}
	return nil
}

func (s *fileKeyValueStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *fileKeyValueStore) Close() error {
	return nil
}
