package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/internal/validators"
	"github.com/MKhiriev/vibeclip/models"
)

const defaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// DefaultAvatar returns the generated avatar used when registration supplies
// none.
func DefaultAvatar(username string) string {
	return defaultAvatarURL + username
}

type clientSessionService struct {
	accounts  store.AccountDirectory
	validator validators.Validator
	ids       IDGenerator
	now       func() time.Time
	logger    *logger.Logger

	// ops serialises register/login/logout/profile edits end to end
	ops sync.Mutex

	mu        sync.Mutex
	state     SessionState
	listeners map[int]func(SessionState)
	nextSubID int
}

func NewClientSessionService(accounts store.AccountDirectory, validator validators.Validator, ids IDGenerator, log *logger.Logger) SessionService {
	return &clientSessionService{
		accounts:  accounts,
		validator: validator,
		ids:       ids,
		now:       time.Now,
		logger:    log,
		listeners: make(map[int]func(SessionState)),
	}
}

// ── Modal ────────────────────────────────────────────────────────────────────

func (s *clientSessionService) OpenLogin() {
	s.update(func(st *SessionState) {
		st.ModalOpen = true
		st.Mode = AuthModeLogin
		st.Errors = nil
	})
}

func (s *clientSessionService) OpenRegister() {
	s.update(func(st *SessionState) {
		st.ModalOpen = true
		st.Mode = AuthModeRegister
		st.Errors = nil
	})
}

func (s *clientSessionService) SwitchMode() {
	s.update(func(st *SessionState) {
		if st.Mode == AuthModeLogin {
			st.Mode = AuthModeRegister
		} else {
			st.Mode = AuthModeLogin
		}
		st.Errors = nil
	})
}

func (s *clientSessionService) Close() {
	s.update(func(st *SessionState) {
		st.ModalOpen = false
		st.Errors = nil
	})
}

// ── Register / Login / Logout ────────────────────────────────────────────────

func (s *clientSessionService) Register(ctx context.Context, form models.RegistrationForm) (models.Account, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	if err := s.validator.Validate(ctx, form); err != nil {
		var fieldErrs validators.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return models.Account{}, fmt.Errorf("error validating registration: %w", err)
		}
		return models.Account{}, s.fail(AuthErrorValidation, fieldErrs...)
	}

	_, err := s.accounts.FindByEmail(ctx, form.Email)
	switch {
	case err == nil:
		return models.Account{}, s.fail(AuthErrorConflict, models.FieldError{
			Field:   models.FieldEmail,
			Message: app.MsgEmailAlreadyRegistered,
		})
	case !errors.Is(err, store.ErrAccountNotFound):
		s.logger.Err(err).Str("func", "clientSessionService.Register").Msg("error looking up email")
		return models.Account{}, fmt.Errorf("error looking up email: %w", err)
	}

	// validated above
	age, _ := strconv.Atoi(strings.TrimSpace(form.Age))

	avatar := form.Avatar
	if avatar == "" {
		avatar = DefaultAvatar(form.Username)
	}

	account := models.Account{
		ID:         s.ids.Generate(),
		Username:   form.Username,
		Email:      form.Email,
		Avatar:     avatar,
		Age:        age,
		IsLoggedIn: true,
		CreatedAt:  s.now().UTC(),
	}

	if err = s.persistSession(ctx, account); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Register").Msg("error saving new account")
		return models.Account{}, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account registered")
	s.authenticate(account)
	return account, nil
}

func (s *clientSessionService) Login(ctx context.Context, email, _ string) (models.Account, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, s.fail(AuthErrorNotFound, models.FieldError{
			Field:   models.FieldEmail,
			Message: app.MsgEmailNotRegistered,
		})
	}
	if err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Login").Msg("error looking up email")
		return models.Account{}, fmt.Errorf("error looking up email: %w", err)
	}

	account.IsLoggedIn = true
	if err = s.persistSession(ctx, account); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Login").Msg("error saving session")
		return models.Account{}, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("logged in")
	s.authenticate(account)
	return account, nil
}

func (s *clientSessionService) Logout(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	current, ok := s.CurrentAccount()
	if !ok {
		return nil
	}

	current.IsLoggedIn = false
	if err := s.accounts.UpsertAccount(ctx, current); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Logout").Msg("error saving account")
		return fmt.Errorf("error saving account: %w", err)
	}
	if err := s.accounts.SetCurrentSession(ctx, nil); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Logout").Msg("error clearing session")
		return fmt.Errorf("error clearing session: %w", err)
	}

	s.logger.Info().Str("account_id", current.ID).Msg("logged out")
	s.update(func(st *SessionState) {
		st.Account = nil
	})
	return nil
}

// ── Profile ──────────────────────────────────────────────────────────────────

func (s *clientSessionService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Account, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	current, ok := s.CurrentAccount()
	if !ok {
		return models.Account{}, ErrNotAuthenticated
	}

	if err := s.validator.Validate(ctx, update); err != nil {
		var fieldErrs validators.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return models.Account{}, fmt.Errorf("error validating profile: %w", err)
		}
		return models.Account{}, s.fail(AuthErrorValidation, fieldErrs...)
	}

	if update.Username != nil {
		current.Username = *update.Username
	}
	if update.Bio != nil {
		current.Bio = *update.Bio
	}
	if update.Avatar != nil {
		current.Avatar = *update.Avatar
	}

	if err := s.persistSession(ctx, current); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.UpdateProfile").Msg("error saving profile")
		return models.Account{}, err
	}

	s.update(func(st *SessionState) {
		st.Account = &current
		st.Errors = nil
	})
	return current, nil
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *clientSessionService) Restore(ctx context.Context) error {
	account, err := s.accounts.GetCurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("error restoring session: %w", err)
	}

	s.update(func(st *SessionState) {
		st.Account = account
	})
	if account != nil {
		s.logger.Debug().Str("account_id", account.ID).Msg("session restored")
	}
	return nil
}

func (s *clientSessionService) FieldError(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FieldError(field)
}

func (s *clientSessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *clientSessionService) CurrentAccount() (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Account == nil {
		return models.Account{}, false
	}
	return *s.state.Account, true
}

func (s *clientSessionService) Subscribe(fn func(SessionState)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// persistSession writes account to the directory and points the session at it.
func (s *clientSessionService) persistSession(ctx context.Context, account models.Account) error {
	if err := s.accounts.UpsertAccount(ctx, account); err != nil {
		return fmt.Errorf("error saving account: %w", err)
	}
	if err := s.accounts.SetCurrentSession(ctx, &account); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *clientSessionService) authenticate(account models.Account) {
	s.update(func(st *SessionState) {
		st.Account = &account
		st.ModalOpen = false
		st.Errors = nil
	})
}

func (s *clientSessionService) fail(kind AuthErrorKind, fields ...models.FieldError) error {
	fields = append([]models.FieldError(nil), fields...)
	s.update(func(st *SessionState) {
		st.Errors = fields
	})
	return &AuthError{Kind: kind, Fields: fields}
}

// update applies fn under the lock and notifies listeners after releasing it.
func (s *clientSessionService) update(fn func(st *SessionState)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	listeners := make([]func(SessionState), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot.clone())
	}
}
