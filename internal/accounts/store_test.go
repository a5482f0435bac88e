package accounts

import (
	"errors"
	"testing"
	"time"

	"novares-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(id, email string, balance int64) models.Account {
	return models.Account{
		Id:        id,
		Name:      "Test",
		LastName:  id,
		Email:     email,
		Status:    models.StatusPending,
		Balance:   balance,
		CreatedAt: time.Now(),
	}
}

func TestCreateAndGet(t *testing.T) {
	s := NewStore()

	id, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 100))
	require.NoError(t, err)
	assert.Equal(t, "STX-AAAAA", id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, int64(100), got.Balance)
	assert.Equal(t, models.StatusPending, got.Status)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestCreate_DuplicateIdentity(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 0))
	require.NoError(t, err)

	tests := []struct {
		name    string
		account models.Account
	}{
		{"same id", newAccount("STX-AAAAA", "other@example.com", 0)},
		{"same email", newAccount("STX-BBBBB", "a@example.com", 0)},
		{"same email different case", newAccount("STX-CCCCC", "A@Example.com", 0)},
		{"email equal to an existing id", newAccount("STX-DDDDD", "STX-AAAAA", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.account)
			assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
		})
	}
	assert.Equal(t, 1, s.Len())
}

func TestCreate_NegativeBalanceRejected(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", -1))
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestFindByLoginKey(t *testing.T) {
	s := NewStore()
	a := newAccount("STX-AAAAA", "a@example.com", 0)
	a.Credentials = models.Credentials{Username: "alias", PasswordHash: "x"}
	_, err := s.Create(a)
	require.NoError(t, err)

	for _, key := range []string{"STX-AAAAA", "alias", "a@example.com", "A@EXAMPLE.COM"} {
		got, ok := s.FindByLoginKey(key)
		require.True(t, ok, key)
		assert.Equal(t, "STX-AAAAA", got.Id)
	}

	_, ok := s.FindByLoginKey("")
	assert.False(t, ok)
	_, ok = s.FindByLoginKey("nobody")
	assert.False(t, ok)
}

func TestUpdateBalance(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 10))
	require.NoError(t, err)

	require.NoError(t, s.UpdateBalance("STX-AAAAA", 75))
	got, _ := s.Get("STX-AAAAA")
	assert.Equal(t, int64(75), got.Balance)

	assert.ErrorIs(t, s.UpdateBalance("STX-AAAAA", -5), models.ErrInvalidAmount)
	assert.ErrorIs(t, s.UpdateBalance("missing", 5), models.ErrNotFound)

	got, _ = s.Get("STX-AAAAA")
	assert.Equal(t, int64(75), got.Balance)
}

func TestAppendNotification_NewestFirst(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 0))
	require.NoError(t, err)

	require.NoError(t, s.AppendNotification("STX-AAAAA", models.Notification{Id: "1", Message: "first"}))
	require.NoError(t, s.AppendNotification("STX-AAAAA", models.Notification{Id: "2", Message: "second"}))

	got, _ := s.Get("STX-AAAAA")
	require.Len(t, got.Inbox, 2)
	assert.Equal(t, "2", got.Inbox[0].Id)
	assert.Equal(t, "1", got.Inbox[1].Id)

	err = s.AppendNotification("missing", models.Notification{Id: "3"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 0))
	require.NoError(t, err)
	require.NoError(t, s.AppendNotification("STX-AAAAA", models.Notification{Id: "1"}))

	got, _ := s.Get("STX-AAAAA")
	got.Inbox[0].Message = "tampered"
	got.Balance = 999

	again, _ := s.Get("STX-AAAAA")
	assert.Equal(t, "", again.Inbox[0].Message)
	assert.Equal(t, int64(0), again.Balance)
}

func TestSetCredentials_UsernameUnique(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 0))
	require.NoError(t, err)
	_, err = s.Create(newAccount("STX-BBBBB", "b@example.com", 0))
	require.NoError(t, err)

	require.NoError(t, s.SetCredentials("STX-AAAAA", models.Credentials{Username: "STX-AAAAA", PasswordHash: "h"}))
	err = s.SetCredentials("STX-BBBBB", models.Credentials{Username: "a@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
}

func TestRemoveAndList(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"STX-AAAAA", "STX-BBBBB", "STX-CCCCC"} {
		_, err := s.Create(newAccount(id, id+"@example.com", 0))
		require.NoError(t, err)
	}

	require.NoError(t, s.Remove("STX-BBBBB"))
	assert.ErrorIs(t, s.Remove("STX-BBBBB"), models.ErrNotFound)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "STX-AAAAA", list[0].Id)
	assert.Equal(t, "STX-CCCCC", list[1].Id)
	assert.False(t, s.Exists("STX-BBBBB"))
}

func TestClone_Independent(t *testing.T) {
	s := NewStore()
	_, err := s.Create(newAccount("STX-AAAAA", "a@example.com", 10))
	require.NoError(t, err)

	c := s.Clone()
	require.NoError(t, c.UpdateBalance("STX-AAAAA", 0))
	require.NoError(t, c.Remove("STX-AAAAA"))

	got, ok := s.Get("STX-AAAAA")
	require.True(t, ok)
	assert.Equal(t, int64(10), got.Balance)
}

func TestNewStoreFrom_KeepsOrder(t *testing.T) {
	s, err := NewStoreFrom([]models.Account{
		newAccount("STX-CCCCC", "c@example.com", 0),
		newAccount("STX-AAAAA", "a@example.com", 0),
	})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "STX-CCCCC", list[0].Id)

	_, err = NewStoreFrom([]models.Account{
		newAccount("STX-AAAAA", "a@example.com", 0),
		newAccount("STX-AAAAA", "b@example.com", 0),
	})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
}
