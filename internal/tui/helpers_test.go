package tui

import (
	"context"
	"testing"

	"github.com/MKhiriev/vibeclip/internal/catalog"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) *service.ClientServices {
	t.Helper()
	storages := store.NewClientStoragesFromKV(store.NewMemoryKeyValueStore(), logger.Nop())
	t.Cleanup(func() { _ = storages.Close() })
	return service.NewClientServices(storages, catalog.Demo(), logger.Nop())
}

func registerAlice(t *testing.T, svcs *service.ClientServices) models.Account {
	t.Helper()
	account, err := svcs.SessionService.Register(context.Background(), models.RegistrationForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Age:      "25",
	})
	require.NoError(t, err)
	return account
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// exec runs cmd and returns its message, nil when cmd is nil.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// collect runs cmd and flattens a batch into the messages it produces.
func collect(cmd tea.Cmd) []tea.Msg {
	msg := exec(cmd)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}
