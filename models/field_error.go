package models

// Form field names used as keys for [FieldError].
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAge      = "age"
	FieldBio      = "bio"
)

// FieldError pairs a form field with a human-readable message.
// It lives for one submission cycle and is never persisted.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
