package authority

import (
	"context"
	"testing"

	"novares-ledger-go/internal/membership"
	"novares-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) models.AdminConfig {
	t.Helper()
	pass, err := membership.HashSecret("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)
	code, err := membership.HashSecret("4242", bcrypt.MinCost)
	require.NoError(t, err)
	return models.AdminConfig{Username: "root", PasswordHash: pass, SecurityCodeHash: code}
}

func TestAuthenticate(t *testing.T) {
	a := New(testConfig(t))

	s, err := a.Authenticate("root", "admin-pass", "4242")
	require.NoError(t, err)
	assert.Equal(t, "root", s.Admin)

	cases := []struct{ user, pass, code string }{
		{"other", "admin-pass", "4242"},
		{"root", "wrong", "4242"},
		{"root", "admin-pass", "0000"},
		{"", "", ""},
	}
	for _, c := range cases {
		_, err := a.Authenticate(c.user, c.pass, c.code)
		assert.ErrorIs(t, err, models.ErrBadCredential)
	}
}

func TestAuthenticate_NotConfigured(t *testing.T) {
	a := New(models.AdminConfig{})
	assert.False(t, a.Configured())

	_, err := a.Authenticate("", "", "")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, SessionFrom(ctx))
	_, err := Require(ctx)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	ctx = WithSession(ctx, &Session{Admin: "root"})
	s, err := Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root", s.Admin)
}
