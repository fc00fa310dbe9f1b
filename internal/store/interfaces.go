package store

import (
	"context"

	"github.com/MKhiriev/vibeclip/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValueStore is the durable string-keyed storage every repository is built
// on. Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

// AccountDirectory keeps the list of known accounts and the pointer to the
// account of the current session.
type AccountDirectory interface {
	// ListAccounts returns every account in insertion order. A missing or
	// unreadable list is returned as empty.
	ListAccounts(ctx context.Context) ([]models.Account, error)
	// UpsertAccount inserts account or replaces the entry with the same ID.
	UpsertAccount(ctx context.Context, account models.Account) error
	// FindByEmail returns the first account with exactly this email or
	// ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	// GetCurrentSession returns the stored snapshot or nil when nobody is
	// logged in.
	GetCurrentSession(ctx context.Context) (*models.Account, error)
	// SetCurrentSession stores a snapshot of account; nil clears it.
	SetCurrentSession(ctx context.Context, account *models.Account) error
}

// InteractionRepository persists per-account likes and saved items.
type InteractionRepository interface {
	LikedVideoIDs(ctx context.Context, userID string) ([]string, error)
	SaveLikedVideoIDs(ctx context.Context, userID string, videoIDs []string) error
	SavedItems(ctx context.Context, userID string) ([]models.SavedItem, error)
	SaveSavedItems(ctx context.Context, userID string, items []models.SavedItem) error
}
