// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vibeclip/internal/app"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/mock"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/internal/validators"
	"github.com/MKhiriev/vibeclip/models"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// newTestSessionSvc is a helper that builds clientSessionService on mocks.
func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (*clientSessionService, *mock.MockAccountDirectory, *mock.MockIDGenerator) {
	t.Helper()
	accounts := mock.NewMockAccountDirectory(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)

	svc := NewClientSessionService(accounts, validators.NewAccountValidator(), ids, logger.Nop()).(*clientSessionService)
	svc.now = func() time.Time { return fixedNow }
	return svc, accounts, ids
}

// newMemorySessionSvc builds the service on a real in-memory directory.
func newMemorySessionSvc(t *testing.T) (*clientSessionService, store.AccountDirectory) {
	t.Helper()
	dir := store.NewAccountDirectory(store.NewMemoryKeyValueStore(), logger.Nop())
	svc := NewClientSessionService(dir, validators.NewAccountValidator(), &seqIDs{}, logger.Nop()).(*clientSessionService)
	svc.now = func() time.Time { return fixedNow }
	return svc, dir
}

// seqIDs returns id-1, id-2, ...
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

func validRegistration() models.RegistrationForm {
	return models.RegistrationForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Age:      "25",
	}
}

// ── Modal ────────────────────────────────────────────────────────────────────

func TestClientSessionService_ModalTransitions(t *testing.T) {
	svc, _ := newMemorySessionSvc(t)

	assert.False(t, svc.State().ModalOpen)

	svc.OpenLogin()
	st := svc.State()
	assert.True(t, st.ModalOpen)
	assert.Equal(t, AuthModeLogin, st.Mode)

	svc.SwitchMode()
	assert.Equal(t, AuthModeRegister, svc.State().Mode)
	svc.SwitchMode()
	assert.Equal(t, AuthModeLogin, svc.State().Mode)

	svc.OpenRegister()
	assert.Equal(t, AuthModeRegister, svc.State().Mode)

	svc.Close()
	assert.False(t, svc.State().ModalOpen)
}

func TestClientSessionService_ModalTransitionsClearErrors(t *testing.T) {
	transitions := map[string]func(s SessionService){
		"OpenLogin":    func(s SessionService) { s.OpenLogin() },
		"OpenRegister": func(s SessionService) { s.OpenRegister() },
		"SwitchMode":   func(s SessionService) { s.SwitchMode() },
		"Close":        func(s SessionService) { s.Close() },
	}

	for name, apply := range transitions {
		t.Run(name, func(t *testing.T) {
			svc, _ := newMemorySessionSvc(t)
			svc.OpenRegister()
			_, err := svc.Register(context.Background(), models.RegistrationForm{})
			require.Error(t, err)
			require.NotEmpty(t, svc.State().Errors)

			apply(svc)
			assert.Empty(t, svc.State().Errors)
			assert.Empty(t, svc.FieldError(models.FieldUsername))
		})
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientSessionService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, ids := newTestSessionSvc(t, ctrl)
	ctx := context.Background()
	svc.OpenRegister()

	expected := models.Account{
		ID:         "acc-1",
		Username:   "alice",
		Email:      "alice@example.com",
		Avatar:     "https://api.dicebear.com/7.x/avataaars/svg?seed=alice",
		Age:        25,
		IsLoggedIn: true,
		CreatedAt:  fixedNow,
	}

	gomock.InOrder(
		accounts.EXPECT().FindByEmail(ctx, "alice@example.com").Return(models.Account{}, store.ErrAccountNotFound),
		ids.EXPECT().Generate().Return("acc-1"),
		accounts.EXPECT().UpsertAccount(ctx, expected).Return(nil),
		accounts.EXPECT().SetCurrentSession(ctx, &expected).Return(nil),
	)

	got, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	st := svc.State()
	require.True(t, st.IsAuthenticated())
	assert.Equal(t, expected, *st.Account)
	assert.False(t, st.ModalOpen)
	assert.Empty(t, st.Errors)
}

func TestClientSessionService_Register_KeepsSuppliedAvatar(t *testing.T) {
	svc, _ := newMemorySessionSvc(t)
	form := validRegistration()
	form.Avatar = "data:image/png;base64,AAAA"

	got, err := svc.Register(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, form.Avatar, got.Avatar)
	assert.Zero(t, got.Followers)
	assert.Zero(t, got.Following)
	assert.Zero(t, got.Likes)
	assert.False(t, got.IsVerified)
	assert.Empty(t, got.Bio)
}

func TestClientSessionService_Register_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no directory calls expected
	svc, _, _ := newTestSessionSvc(t, ctrl)
	svc.OpenRegister()

	_, err := svc.Register(context.Background(), models.RegistrationForm{
		Username: "ab",
		Email:    "nope",
		Password: "123",
		Age:      "10",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, AuthErrorValidation, authErr.Kind)
	assert.Len(t, authErr.Fields, 4)

	st := svc.State()
	assert.False(t, st.IsAuthenticated())
	assert.True(t, st.ModalOpen, "modal stays open on failure")
	assert.Equal(t, AuthModeRegister, st.Mode)
	assert.Equal(t, app.MsgUsernameTooShort, svc.FieldError(models.FieldUsername))
	assert.Equal(t, app.MsgInvalidEmail, svc.FieldError(models.FieldEmail))
	assert.Equal(t, app.MsgPasswordTooShort, svc.FieldError(models.FieldPassword))
	assert.Equal(t, app.MsgAgeTooYoung, svc.FieldError(models.FieldAge))
}

func TestClientSessionService_Register_DuplicateEmail(t *testing.T) {
	svc, dir := newMemorySessionSvc(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	before, err := dir.FindByEmail(ctx, first.Email)
	require.NoError(t, err)

	form := validRegistration()
	form.Username = "alice2"
	_, err = svc.Register(ctx, form)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	assert.Equal(t, app.MsgEmailAlreadyRegistered, svc.FieldError(models.FieldEmail))
	assert.False(t, svc.State().IsAuthenticated())

	accounts, err := dir.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, before, accounts[0])
	assert.Equal(t, first.ID, accounts[0].ID)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.False(t, accounts[0].IsLoggedIn)
}

func TestClientSessionService_Register_StorageFailureLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, ids := newTestSessionSvc(t, ctrl)
	ctx := context.Background()
	svc.OpenRegister()

	accounts.EXPECT().FindByEmail(ctx, gomock.Any()).Return(models.Account{}, store.ErrAccountNotFound)
	ids.EXPECT().Generate().Return("acc-1")
	accounts.EXPECT().UpsertAccount(ctx, gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Register(ctx, validRegistration())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error saving account")

	st := svc.State()
	assert.False(t, st.IsAuthenticated())
	assert.True(t, st.ModalOpen)
}

func TestClientSessionService_Register_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestSessionSvc(t, ctrl)
	accounts.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(models.Account{}, errors.New("io"))

	_, err := svc.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientSessionService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newMemorySessionSvc(t)
	svc.OpenLogin()

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailNotRegistered)
	assert.Equal(t, app.MsgEmailNotRegistered, svc.FieldError(models.FieldEmail))

	st := svc.State()
	assert.False(t, st.IsAuthenticated())
	assert.True(t, st.ModalOpen)
}

func TestClientSessionService_Login_IgnoresPassword(t *testing.T) {
	svc, dir := newMemorySessionSvc(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	svc.OpenLogin()
	got, err := svc.Login(ctx, "alice@example.com", "not-the-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, got.ID)
	assert.True(t, got.IsLoggedIn)

	st := svc.State()
	require.True(t, st.IsAuthenticated())
	assert.False(t, st.ModalOpen)

	stored, err := dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsLoggedIn)

	pointer, err := dir.GetCurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, pointer)
	assert.Equal(t, registered.ID, pointer.ID)
}

func TestClientSessionService_Login_WritesSessionAfterAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()
	stored := models.Account{ID: "a1", Email: "a@x.io", Username: "abc"}
	loggedIn := stored
	loggedIn.IsLoggedIn = true

	gomock.InOrder(
		accounts.EXPECT().FindByEmail(ctx, "a@x.io").Return(stored, nil),
		accounts.EXPECT().UpsertAccount(ctx, loggedIn).Return(nil),
		accounts.EXPECT().SetCurrentSession(ctx, &loggedIn).Return(nil),
	)

	_, err := svc.Login(ctx, "a@x.io", "")
	require.NoError(t, err)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestClientSessionService_Logout(t *testing.T) {
	svc, dir := newMemorySessionSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.State().IsAuthenticated())

	stored, err := dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsLoggedIn)

	pointer, err := dir.GetCurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, pointer)
}

func TestClientSessionService_Logout_AnonymousIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// any directory call would fail the test
	svc, _, _ := newTestSessionSvc(t, ctrl)

	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestClientSessionService_Restore(t *testing.T) {
	ctx := context.Background()
	first, dir := newMemorySessionSvc(t)
	registered, err := first.Register(ctx, validRegistration())
	require.NoError(t, err)

	// a fresh manager over the same directory picks the session up
	second := NewClientSessionService(dir, validators.NewAccountValidator(), &seqIDs{}, logger.Nop())
	assert.False(t, second.State().IsAuthenticated())

	require.NoError(t, second.Restore(ctx))
	got, ok := second.CurrentAccount()
	require.True(t, ok)
	assert.Equal(t, registered, got)
}

func TestClientSessionService_Restore_SessionWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStore()
	dir := store.NewAccountDirectory(kv, logger.Nop())
	require.NoError(t, kv.Set(ctx, store.KeyCurrentSession, []byte(`{}`)))

	svc := NewClientSessionService(dir, validators.NewAccountValidator(), &seqIDs{}, logger.Nop())
	require.NoError(t, svc.Restore(ctx))
	assert.False(t, svc.State().IsAuthenticated())

	require.NoError(t, svc.Logout(ctx))
	accounts, err := dir.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	raw, err := kv.Get(ctx, store.KeyAccounts)
	require.NoError(t, err)
	assert.Nil(t, raw, "logout of an anonymous session writes nothing")
}

func TestClientSessionService_Restore_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, accounts, _ := newTestSessionSvc(t, ctrl)
	accounts.EXPECT().GetCurrentSession(gomock.Any()).Return(nil, errors.New("io"))

	assert.Error(t, svc.Restore(context.Background()))
	assert.False(t, svc.State().IsAuthenticated())
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestClientSessionService_Subscribe(t *testing.T) {
	svc, _ := newMemorySessionSvc(t)

	var got []SessionState
	unsubscribe := svc.Subscribe(func(st SessionState) {
		got = append(got, st)
		// listeners run outside the lock and may read the service
		_ = svc.State()
	})

	svc.OpenLogin()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].ModalOpen)
	assert.True(t, got[1].IsAuthenticated())
	assert.False(t, got[1].ModalOpen)

	unsubscribe()
	unsubscribe()
	svc.Close()
	assert.Len(t, got, 2)
}

func TestClientSessionService_StateIsSnapshot(t *testing.T) {
	svc, _ := newMemorySessionSvc(t)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	st := svc.State()
	st.Account.Username = "mutated"

	acc, ok := svc.CurrentAccount()
	require.True(t, ok)
	assert.Equal(t, "alice", acc.Username)
}

// ── UpdateProfile ────────────────────────────────────────────────────────────

func TestClientSessionService_UpdateProfile(t *testing.T) {
	svc, dir := newMemorySessionSvc(t)
	ctx := context.Background()
	bio := "just vibing"

	_, err := svc.UpdateProfile(ctx, models.ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	got, err := svc.UpdateProfile(ctx, models.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, got.Bio)

	stored, err := dir.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, bio, stored.Bio)

	pointer, err := dir.GetCurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, bio, pointer.Bio)

	short := "al"
	_, err = svc.UpdateProfile(ctx, models.ProfileUpdate{Username: &short})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, app.MsgUsernameTooShort, svc.FieldError(models.FieldUsername))

	acc, _ := svc.CurrentAccount()
	assert.Equal(t, "alice", acc.Username)
}

// ── End to end ───────────────────────────────────────────────────────────────

func TestClientSessionService_RegisterLogoutLogin(t *testing.T) {
	svc, dir := newMemorySessionSvc(t)
	ctx := context.Background()

	bob := validRegistration()
	bob.Username, bob.Email = "bob", "bob@example.com"
	carol := validRegistration()
	carol.Username, carol.Email = "carol", "carol@example.com"

	_, err := svc.Register(ctx, bob)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Register(ctx, carol)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	got, err := svc.Login(ctx, "bob@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	accounts, err := dir.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "bob", accounts[0].Username)
	assert.True(t, accounts[0].IsLoggedIn)
	assert.False(t, accounts[1].IsLoggedIn)
}
