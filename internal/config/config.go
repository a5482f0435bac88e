/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"novares-ledger-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	limiterTTL, err := getEnvDuration("SERVER_AUTH_LIMITER_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	starterBalance := getEnvInt("LEDGER_STARTER_BALANCE", 100)
	if starterBalance < 0 {
		return nil, fmt.Errorf("invalid LEDGER_STARTER_BALANCE: %d (must not be negative)", starterBalance)
	}

	return &models.Config{
		Database: models.DatabaseConfig{
			Path: getEnvString("DATABASE_PATH", "novares.db"),
			// a single writer connection keeps SQLite from reporting SQLITE_BUSY
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Ledger: models.LedgerConfig{
			StarterBalance: int64(starterBalance),
			SeedFile:       getEnvString("LEDGER_SEED_FILE", ""),
			SupportEmail:   getEnvString("LEDGER_SUPPORT_EMAIL", "soporte@spacetramoyax.com"),
		},
		Admin: models.AdminConfig{
			Username:         getEnvString("ADMIN_USERNAME", ""),
			PasswordHash:     getEnvString("ADMIN_PASSWORD_HASH", ""),
			SecurityCodeHash: getEnvString("ADMIN_SECURITY_CODE_HASH", ""),
		},
		Server: models.ServerConfig{
			Addr:            getEnvString("SERVER_ADDR", ":8080"),
			ShutdownTimeout: shutdownTimeout,
			AuthRate:        getEnvFloat("SERVER_AUTH_RATE", 5),
			AuthBurst:       getEnvInt("SERVER_AUTH_BURST", 10),
			LimiterTTL:      limiterTTL,
			TrustedProxies:  getEnvList("SERVER_TRUSTED_PROXIES"),
		},
		Admission: models.AdmissionConfig{
			Open:  getEnvString("ADMISSION_OPEN", "00:00"),
			Close: getEnvString("ADMISSION_CLOSE", "23:59"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty items
func getEnvList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
