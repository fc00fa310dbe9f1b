package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/vibeclip/models"
)

func TestAuthError_Unwrap(t *testing.T) {
	tests := []struct {
		kind AuthErrorKind
		want error
	}{
		{AuthErrorValidation, ErrValidation},
		{AuthErrorConflict, ErrEmailAlreadyRegistered},
		{AuthErrorNotFound, ErrEmailNotRegistered},
	}

	for _, tt := range tests {
		err := error(&AuthError{Kind: tt.kind, Fields: []models.FieldError{{Field: "email", Message: "m"}}})
		assert.ErrorIs(t, err, tt.want)
		for _, other := range []error{ErrValidation, ErrEmailAlreadyRegistered, ErrEmailNotRegistered} {
			if other != tt.want {
				assert.False(t, errors.Is(err, other))
			}
		}
		assert.Contains(t, err.Error(), "email: m")
	}
}

func TestSessionState_FieldError(t *testing.T) {
	st := SessionState{Errors: []models.FieldError{
		{Field: models.FieldAge, Message: "first"},
		{Field: models.FieldAge, Message: "second"},
	}}

	assert.Equal(t, "first", st.FieldError(models.FieldAge))
	assert.Empty(t, st.FieldError(models.FieldEmail))
	assert.Equal(t, "login", AuthModeLogin.String())
	assert.Equal(t, "register", AuthModeRegister.String())
}
