package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_PATH", "LEDGER_STARTER_BALANCE", "SERVER_ADDR", "ADMIN_USERNAME", "DB_PING_TIMEOUT", "SERVER_AUTH_LIMITER_TTL", "SERVER_TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "novares.db", cfg.Database.Path)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.PingTimeout)
	assert.Equal(t, int64(100), cfg.Ledger.StarterBalance)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Admin.Username)
	assert.Equal(t, 10*time.Minute, cfg.Server.LimiterTTL)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/ledger.db")
	t.Setenv("LEDGER_STARTER_BALANCE", "250")
	t.Setenv("SERVER_AUTH_RATE", "0.5")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMISSION_OPEN", "08:00")
	t.Setenv("SERVER_TRUSTED_PROXIES", " 10.0.0.0/8, ,127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
	assert.Equal(t, int64(250), cfg.Ledger.StarterBalance)
	assert.Equal(t, 0.5, cfg.Server.AuthRate)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "08:00", cfg.Admission.Open)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_PING_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_PING_TIMEOUT", "")
	t.Setenv("LEDGER_STARTER_BALANCE", "-1")
	_, err = Load()
	assert.Error(t, err)
}
