package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/models"
)

type accountDirectory struct {
	kv     KeyValueStore
	logger *logger.Logger

	// serialises read-modify-write of the account list
	mu sync.Mutex
}

func NewAccountDirectory(kv KeyValueStore, log *logger.Logger) AccountDirectory {
	return &accountDirectory{kv: kv, logger: log}
}

func (d *accountDirectory) ListAccounts(ctx context.Context) ([]models.Account, error) {
	raw, err := d.kv.Get(ctx, KeyAccounts)
	if err != nil {
		d.logger.Err(err).Str("func", "accountDirectory.ListAccounts").Msg("error reading accounts")
		return nil, fmt.Errorf("error reading accounts: %w", err)
	}

	decoded := decodeOrEmpty[[]models.Account](d.logger, KeyAccounts, raw)
	accounts := make([]models.Account, 0, len(decoded))
	for i, a := range decoded {
		if !isUsableAccount(a) {
			d.logger.Warn().Str("func", "accountDirectory.ListAccounts").Int("index", i).Msg("skipping stored account without id or email")
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (d *accountDirectory) UpsertAccount(ctx context.Context, account models.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts, err := d.ListAccounts(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range accounts {
		if accounts[i].ID == account.ID {
			accounts[i] = account
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, account)
	}

	data, err := encode(KeyAccounts, accounts)
	if err != nil {
		return err
	}

	if err = d.kv.Set(ctx, KeyAccounts, data); err != nil {
		d.logger.Err(err).Str("func", "accountDirectory.UpsertAccount").Str("account_id", account.ID).Msg("error saving accounts")
		return fmt.Errorf("error saving accounts: %w", err)
	}

	return nil
}

func (d *accountDirectory) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	accounts, err := d.ListAccounts(ctx)
	if err != nil {
		return models.Account{}, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return a, nil
		}
	}

	return models.Account{}, ErrAccountNotFound
}

func (d *accountDirectory) GetCurrentSession(ctx context.Context) (*models.Account, error) {
	raw, err := d.kv.Get(ctx, KeyCurrentSession)
	if err != nil {
		d.logger.Err(err).Str("func", "accountDirectory.GetCurrentSession").Msg("error reading current session")
		return nil, fmt.Errorf("error reading current session: %w", err)
	}

	account := decodeOrEmpty[*models.Account](d.logger, KeyCurrentSession, raw)
	if account != nil && !isUsableAccount(*account) {
		d.logger.Warn().Str("func", "accountDirectory.GetCurrentSession").Msg("stored session has no account id or email, treating as anonymous")
		return nil, nil
	}
	return account, nil
}

func (d *accountDirectory) SetCurrentSession(ctx context.Context, account *models.Account) error {
	if account == nil {
		if err := d.kv.Delete(ctx, KeyCurrentSession); err != nil {
			return fmt.Errorf("error clearing current session: %w", err)
		}
		return nil
	}

	data, err := encode(KeyCurrentSession, account)
	if err != nil {
		return err
	}

	if err = d.kv.Set(ctx, KeyCurrentSession, data); err != nil {
		d.logger.Err(err).Str("func", "accountDirectory.SetCurrentSession").Str("account_id", account.ID).Msg("error saving current session")
		return fmt.Errorf("error saving current session: %w", err)
	}

	return nil
}

// isUsableAccount rejects records that decoded as JSON but carry no identity,
// such as "{}".
func isUsableAccount(a models.Account) bool {
	return a.ID != "" && a.Email != ""
}
