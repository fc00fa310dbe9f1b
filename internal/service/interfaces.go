package service

import (
	"context"

	"github.com/MKhiriev/vibeclip/models"
)

// SessionService owns the current session and the auth modal.
//
// State changes are published to subscribers as [SessionState] snapshots.
// A failed operation leaves the session unchanged apart from the recorded
// field errors.
type SessionService interface {
	// OpenLogin opens the modal in login mode and clears field errors.
	OpenLogin()
	// OpenRegister opens the modal in register mode and clears field errors.
	OpenRegister()
	// SwitchMode toggles login and register and clears field errors.
	SwitchMode()
	// Close closes the modal and clears field errors.
	Close()

	// Register validates form, creates the account and logs it in.
	// Failures return an [*AuthError]; the modal stays as it was.
	Register(ctx context.Context, form models.RegistrationForm) (models.Account, error)
	// Login starts a session for the account registered with email.
	// The password is accepted and not checked.
	Login(ctx context.Context, email, password string) (models.Account, error)
	// Logout ends the session. It is a no-op when nobody is logged in.
	Logout(ctx context.Context) error

	// FieldError returns the message recorded for field by the last failed
	// submission, or "".
	FieldError(field string) string

	// Restore loads the persisted session pointer on startup.
	Restore(ctx context.Context) error
	// State returns a snapshot of the whole session.
	State() SessionState
	// CurrentAccount returns the logged-in account, if any.
	CurrentAccount() (models.Account, bool)
	// Subscribe registers fn for every state change and returns a function
	// that removes it.
	Subscribe(fn func(SessionState)) (unsubscribe func())

	// UpdateProfile edits the logged-in account.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Account, error)
}

// InteractionService flips per-account likes and saves. It knows nothing of
// video counters; callers adjust those from the returned state.
type InteractionService interface {
	ToggleLike(ctx context.Context, accountID, videoID string) (liked bool, err error)
	ToggleSave(ctx context.Context, accountID, itemID string, itemType models.ItemType) (saved bool, err error)
	ListLikedVideoIDs(ctx context.Context, accountID string) ([]string, error)
	// ListSavedItems returns saved items in save order, filtered by types
	// when any are given.
	ListSavedItems(ctx context.Context, accountID string, types ...models.ItemType) ([]models.SavedItem, error)
	IsLiked(ctx context.Context, accountID, videoID string) (bool, error)
	IsSaved(ctx context.Context, accountID, itemID string) (bool, error)
}

// FeedService joins the catalog with the current session and its
// interactions. Likes and saves require a logged-in account.
type FeedService interface {
	Videos() []models.Video
	Sounds() []models.Sound
	// Feed returns every video annotated for the current account.
	Feed(ctx context.Context) ([]models.FeedEntry, error)
	// ToggleLike flips the like of videoID and adjusts its like count.
	ToggleLike(ctx context.Context, videoID string) (models.FeedEntry, error)
	ToggleSave(ctx context.Context, itemID string, itemType models.ItemType) (bool, error)
	LikedVideos(ctx context.Context) ([]models.Video, error)
	SavedVideos(ctx context.Context) ([]models.Video, error)
	SavedSounds(ctx context.Context) ([]models.Sound, error)
}
