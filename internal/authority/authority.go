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

// Package authority is the administrator permission boundary. An admin
// Session is obtained from injected credentials and travels in the context
// of every administrative ledger call.
package authority

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"novares-ledger-go/internal/membership"
	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

type sessionContextKey struct{}

// Session identifies an authenticated administrator
type Session struct {
	Admin    string
	IssuedAt time.Time
}

type Authority struct {
	cfg models.AdminConfig
}

func New(cfg models.AdminConfig) *Authority {
	return &Authority{cfg: cfg}
}

// Configured reports whether admin secrets were provided
func (a *Authority) Configured() bool {
	return a.cfg.Username != "" && a.cfg.PasswordHash != "" && a.cfg.SecurityCodeHash != ""
}

// Authenticate checks username, password and security code. All three must match.
func (a *Authority) Authenticate(username, password, securityCode string) (*Session, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: administrator credentials are not configured", models.ErrUnauthorized)
	}

	userOk := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Username)) == 1
	// always run both hash checks so timing does not reveal which factor failed
	passOk := membership.CheckSecret(a.cfg.PasswordHash, password)
	codeOk := membership.CheckSecret(a.cfg.SecurityCodeHash, securityCode)
	if !userOk || !passOk || !codeOk {
		zap.L().Warn("Administrator authentication failed", zap.String("username", username))
		return nil, models.ErrBadCredential
	}

	zap.L().Info("Administrator authenticated", zap.String("admin", username))
	return &Session{Admin: username, IssuedAt: time.Now()}, nil
}

// WithSession attaches an admin session to a context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFrom returns the admin session carried by ctx, or nil if absent
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// Require returns the session or ErrUnauthorized
func Require(ctx context.Context) (*Session, error) {
	s := SessionFrom(ctx)
	if s == nil {
		return nil, fmt.Errorf("%w: administrator session required", models.ErrUnauthorized)
	}
	return s, nil
}
