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

// Package membership implements the onboarding state machine:
//
//	pending --activate--> active
//	pending --reject----> removed (hard delete)
//	active  --remove----> removed (hard delete)
//
// There is no path back from active to pending.
package membership

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"novares-ledger-go/internal/accounts"
	"novares-ledger-go/internal/models"
	"novares-ledger-go/internal/notify"
	"novares-ledger-go/internal/reference"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Registry struct {
	codes          *reference.Generator
	dispatcher     *notify.Dispatcher
	validate       *validator.Validate
	starterBalance int64
	hashCost       int
	now            func() time.Time
}

type Option func(*Registry)

// WithHashCost overrides the bcrypt cost (tests use bcrypt.MinCost)
func WithHashCost(cost int) Option {
	return func(r *Registry) { r.hashCost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(codes *reference.Generator, dispatcher *notify.Dispatcher, starterBalance int64, opts ...Option) *Registry {
	r := &Registry{
		codes:          codes,
		dispatcher:     dispatcher,
		validate:       validator.New(),
		starterBalance: starterBalance,
		hashCost:       bcrypt.DefaultCost,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Application is a validated profile with its password already hashed.
// Preparing it needs no access to the account store.
type Application struct {
	Profile      models.Profile
	PasswordHash string
}

// Prepare normalizes and validates a profile and hashes its password.
// It is the expensive half of a registration and runs outside any lock.
func (r *Registry) Prepare(profile models.Profile) (Application, error) {
	profile = normalize(profile)
	if err := r.validate.Struct(profile); err != nil {
		return Application{}, fmt.Errorf("%w: %s", models.ErrInvalidProfile, describe(err))
	}
	hash, err := HashSecret(profile.Password, r.hashCost)
	if err != nil {
		return Application{}, err
	}
	profile.Password = ""
	return Application{Profile: profile, PasswordHash: hash}, nil
}

// Admit creates a pending account with the starter balance. retired reports
// ids that no live account holds but that must never be issued again; it may
// be nil.
func (r *Registry) Admit(store *accounts.Store, app Application, retired func(string) bool) (models.Account, error) {
	profile := app.Profile
	if _, taken := store.FindByLoginKey(profile.Email); taken {
		return models.Account{}, fmt.Errorf("%w: email %s already registered", models.ErrDuplicateIdentity, profile.Email)
	}

	id, err := r.codes.UniqueMemberCode(func(code string) bool {
		if _, taken := store.FindByLoginKey(code); taken {
			return true
		}
		return retired != nil && retired(code)
	})
	if err != nil {
		return models.Account{}, fmt.Errorf("unable to assign member code: %w", err)
	}

	account := models.Account{
		Id:          id,
		Name:        profile.Name,
		LastName:    profile.LastName,
		Country:     profile.Country,
		Phone:       profile.Phone,
		Email:       profile.Email,
		Credentials: models.Credentials{PasswordHash: app.PasswordHash},
		Status:      models.StatusPending,
		Balance:     r.starterBalance,
		CreatedAt:   r.now(),
	}
	if _, err := store.Create(account); err != nil {
		return models.Account{}, err
	}

	zap.L().Info("Registration received",
		zap.String("account_id", account.Id),
		zap.String("email", account.Email),
		zap.Int64("starter_balance", account.Balance))
	return account, nil
}

// Activate moves a pending account to active, assigns its id as login
// alias and sends the welcome notification.
func (r *Registry) Activate(store *accounts.Store, id string) (models.Account, error) {
	account, ok := store.Get(id)
	if !ok {
		return models.Account{}, fmt.Errorf("%w: account %s", models.ErrNotFound, id)
	}
	if account.Status != models.StatusPending {
		return models.Account{}, fmt.Errorf("%w: account %s is %s", models.ErrNotPending, id, account.Status)
	}

	creds := account.Credentials
	creds.Username = account.Id
	if err := store.SetCredentials(id, creds); err != nil {
		return models.Account{}, err
	}
	if err := store.SetStatus(id, models.StatusActive); err != nil {
		return models.Account{}, err
	}
	r.dispatcher.Send(store, id, notify.Welcome())

	activated, _ := store.Get(id)
	zap.L().Info("Account activated", zap.String("account_id", id))
	return activated, nil
}

// Reject discards a pending registration
func (r *Registry) Reject(store *accounts.Store, id string) error {
	account, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("%w: account %s", models.ErrNotFound, id)
	}
	if account.Status != models.StatusPending {
		return fmt.Errorf("%w: account %s is %s", models.ErrNotPending, id, account.Status)
	}
	if err := store.Remove(id); err != nil {
		return err
	}
	zap.L().Info("Registration rejected", zap.String("account_id", id))
	return nil
}

// Remove hard-deletes an account regardless of its status
func (r *Registry) Remove(store *accounts.Store, id string) error {
	if err := store.Remove(id); err != nil {
		return err
	}
	zap.L().Info("Account removed", zap.String("account_id", id))
	return nil
}

// Authenticate resolves the login key and checks the password.
// Unknown key -> ErrNotFound, wrong password -> ErrBadCredential,
// correct password on a non-active account -> ErrNotActive.
func (r *Registry) Authenticate(store *accounts.Store, loginKey, password string) (models.Account, error) {
	account, ok := store.FindByLoginKey(strings.TrimSpace(loginKey))
	if !ok {
		return models.Account{}, fmt.Errorf("%w: no account for login key", models.ErrNotFound)
	}
	if !CheckSecret(account.Credentials.PasswordHash, password) {
		return models.Account{}, models.ErrBadCredential
	}
	if account.Status != models.StatusActive || !account.Credentials.Complete() {
		return models.Account{}, fmt.Errorf("%w: account %s is %s", models.ErrNotActive, account.Id, account.Status)
	}
	return account, nil
}

// HashSecret hashes a password or security code with bcrypt
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("unable to hash secret: %w", err)
	}
	return string(hash), nil
}

// CheckSecret compares a plain secret with a bcrypt hash
func CheckSecret(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

func normalize(p models.Profile) models.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Country = strings.TrimSpace(p.Country)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	return p
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
