package validators

import (
	"errors"
	"strings"

	"github.com/MKhiriev/vibeclip/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is matched by every [FieldErrors] value.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldErrors lists every failing field of one validation run in form order.
type FieldErrors []models.FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrInvalidInput
}
