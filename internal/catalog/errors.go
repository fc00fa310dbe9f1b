package catalog

import "errors"

var (
	ErrReadingCatalog  = errors.New("error reading catalog file")
	ErrDecodingCatalog = errors.New("error decoding catalog")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)
