package models

import "time"

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig
	Ledger    LedgerConfig
	Admin     AdminConfig
	Server    ServerConfig
	Admission AdmissionConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// LedgerConfig holds ledger engine settings
type LedgerConfig struct {
	StarterBalance int64
	SeedFile       string
	SupportEmail   string
}

// AdminConfig holds the administrator secret material (bcrypt hashes, never plaintext)
type AdminConfig struct {
	Username         string
	PasswordHash     string
	SecurityCodeHash string
}

// ServerConfig holds the HTTP host settings
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	AuthRate        float64
	AuthBurst       int
	LimiterTTL      time.Duration
	TrustedProxies  []string // empty: X-Forwarded-For is never trusted
}

// AdmissionConfig is the time-of-day window in which registrations are accepted.
// Values are "HH:MM" in server local time.
type AdmissionConfig struct {
	Open  string
	Close string
}
