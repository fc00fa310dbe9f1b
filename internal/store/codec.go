package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/vibeclip/internal/logger"
)

// decodeOrEmpty decodes raw into T. Missing or malformed values yield the zero
// value of T; a malformed value is logged and otherwise ignored.
func decodeOrEmpty[T any](log *logger.Logger, key string, raw []byte) T {
	var v T
	if len(raw) == 0 {
		return v
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored value is unreadable, treating as empty")
		var zero T
		return zero
	}

	return v
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrEncodingValue, key, err)
	}
	return data, nil
}
