package store

import (
	"context"
	"errors"
	"testing"

	"novares-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_SaveLoad(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	state, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Accounts)

	state.Accounts = append(state.Accounts, models.Account{Id: "STX-AAAAA", Balance: 10})
	require.NoError(t, b.Save(ctx, state))
	assert.Equal(t, 1, b.Saves())

	// mutating the caller's copy must not leak into the backend
	state.Accounts[0].Balance = 99

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Accounts, 1)
	assert.Equal(t, int64(10), loaded.Accounts[0].Balance)
}

func TestMemoryBackend_FailNextSave(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	boom := errors.New("disk full")

	b.FailNextSave(boom)
	err := b.Save(ctx, &models.State{Accounts: []models.Account{{Id: "x"}}})
	assert.ErrorIs(t, err, boom)

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Accounts)

	require.NoError(t, b.Save(ctx, &models.State{}))
	assert.Equal(t, 1, b.Saves())
}

func TestMemoryBackend_Closed(t *testing.T) {
	b := NewMemoryBackend()
	b.Close()

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, ErrBackendClosed)
	assert.ErrorIs(t, b.Save(context.Background(), &models.State{}), ErrBackendClosed)
}
