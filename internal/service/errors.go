package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/vibeclip/models"
)

var (
	// ErrValidation is matched by an [AuthError] raised for invalid form input.
	ErrValidation = errors.New("validation failed")
	// ErrEmailAlreadyRegistered is matched when registration reuses an email.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrEmailNotRegistered is matched when login finds no account.
	ErrEmailNotRegistered = errors.New("email not registered")

	ErrNotAuthenticated = errors.New("no account is logged in")
	ErrLoginRequired    = errors.New("login required")
	ErrInvalidItemType  = errors.New("invalid item type")
	ErrVideoNotFound    = errors.New("video not found")
)

// AuthErrorKind classifies a failed register or login attempt.
type AuthErrorKind int

const (
	AuthErrorValidation AuthErrorKind = iota
	AuthErrorConflict
	AuthErrorNotFound
)

// AuthError carries the per-field messages of a failed register or login.
// It unwraps to ErrValidation, ErrEmailAlreadyRegistered or
// ErrEmailNotRegistered depending on Kind.
type AuthError struct {
	Kind   AuthErrorKind
	Fields []models.FieldError
}

func (e *AuthError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Unwrap().Error() + ": " + strings.Join(parts, "; ")
}

func (e *AuthError) Unwrap() error {
	switch e.Kind {
	case AuthErrorConflict:
		return ErrEmailAlreadyRegistered
	case AuthErrorNotFound:
		return ErrEmailNotRegistered
	default:
		return ErrValidation
	}
}
