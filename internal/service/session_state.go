package service

import "github.com/MKhiriev/vibeclip/models"

// AuthMode selects which form the auth modal shows.
type AuthMode int

const (
	AuthModeLogin AuthMode = iota
	AuthModeRegister
)

func (m AuthMode) String() string {
	if m == AuthModeRegister {
		return "register"
	}
	return "login"
}

// SessionState is a snapshot of the session manager. Account is nil while
// anonymous. Snapshots never share memory with the manager.
type SessionState struct {
	Account   *models.Account
	ModalOpen bool
	Mode      AuthMode
	Errors    []models.FieldError
}

func (s SessionState) IsAuthenticated() bool {
	return s.Account != nil
}

// FieldError returns the first message recorded for field, or "".
func (s SessionState) FieldError(field string) string {
	for _, e := range s.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (s SessionState) clone() SessionState {
	out := s
	if s.Account != nil {
		a := *s.Account
		out.Account = &a
	}
	if s.Errors != nil {
		out.Errors = append([]models.FieldError(nil), s.Errors...)
	}
	return out
}
