package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "50375*****0", MaskPhone("50375431210"))
	assert.Equal(t, "50489*****0", MaskPhone("504 89887690"))
	assert.Equal(t, "58412******7", MaskPhone("584121351217"))
	assert.Equal(t, "123456", MaskPhone("123 456"))
	assert.Equal(t, "", MaskPhone(""))
}

func TestFormatNovares(t *testing.T) {
	assert.Equal(t, "0 NÓV", FormatNovares(0))
	assert.Equal(t, "800 NÓV", FormatNovares(800))
	assert.Equal(t, "1,000 NÓV", FormatNovares(1000))
	assert.Equal(t, "-1,234,567 NÓV", FormatNovares(-1234567))
}

func TestAdmissionWindow(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2025, 12, 27, h, m, 0, 0, time.UTC) }

	w, err := ParseAdmissionWindow("08:00", "20:30")
	require.NoError(t, err)
	assert.True(t, w.Allows(day(8, 0)))
	assert.True(t, w.Allows(day(20, 30)))
	assert.False(t, w.Allows(day(20, 31)))
	assert.False(t, w.Allows(day(7, 59)))
	assert.Equal(t, "08:00-20:30", w.String())

	overnight, err := ParseAdmissionWindow("22:00", "02:00")
	require.NoError(t, err)
	assert.True(t, overnight.Allows(day(23, 15)))
	assert.True(t, overnight.Allows(day(1, 0)))
	assert.False(t, overnight.Allows(day(12, 0)))

	_, err = ParseAdmissionWindow("25:00", "02:00")
	assert.Error(t, err)
}

func TestLoadFoundingMembers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.yaml")
	content := `
members:
  - id: "0001"
    name: Luis
    last_name: Fernando
    country: Venezuela
    phone: "584121351217"
    email: luis@example.com
    password_hash: "$2a$04$abcdefghijklmnopqrstuu"
    balance: 800
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	members, err := LoadFoundingMembers(path)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "0001", members[0].Id)
	assert.Equal(t, "Fernando", members[0].LastName)
	assert.Equal(t, int64(800), members[0].Balance)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("members:\n  - name: NoEmail\n"), 0o600))
	_, err = LoadFoundingMembers(bad)
	assert.Error(t, err)

	_, err = LoadFoundingMembers(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
