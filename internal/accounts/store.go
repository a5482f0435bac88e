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

// Package accounts holds member records and their inboxes.
//
// The Store is not safe for concurrent use; the ledger engine serializes
// every access behind its own lock. All mutations replace the whole record.
package accounts

import (
	"fmt"
	"strings"

	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

type Store struct {
	order []string // registration order
	byId  map[string]models.Account
}

func NewStore() *Store {
	return &Store{byId: make(map[string]models.Account)}
}

// NewStoreFrom rebuilds a store from persisted accounts, keeping their order
func NewStoreFrom(accounts []models.Account) (*Store, error) {
	s := NewStore()
	for _, a := range accounts {
		if _, err := s.Create(a); err != nil {
			return nil, fmt.Errorf("unable to restore account %s: %w", a.Id, err)
		}
	}
	return s, nil
}

// Create inserts a new account. The id must be unique, and the email and
// username must not collide with any login key already in use.
func (s *Store) Create(account models.Account) (string, error) {
	if account.Id == "" {
		return "", fmt.Errorf("%w: account id cannot be empty", models.ErrInvalidProfile)
	}
	if account.Balance < 0 {
		return "", fmt.Errorf("%w: balance cannot be negative", models.ErrInvalidAmount)
	}
	if _, exists := s.byId[account.Id]; exists {
		return "", fmt.Errorf("%w: id %s already exists", models.ErrDuplicateIdentity, account.Id)
	}
	for _, key := range []string{account.Id, account.Email, account.Credentials.Username} {
		if key == "" {
			continue
		}
		if owner, taken := s.loginKeyOwner(key); taken {
			return "", fmt.Errorf("%w: login key %q already used by %s", models.ErrDuplicateIdentity, key, owner)
		}
	}

	s.byId[account.Id] = account.Clone()
	s.order = append(s.order, account.Id)

	zap.L().Debug("Account stored", zap.String("account_id", account.Id))
	return account.Id, nil
}

// Get returns a copy of the account
func (s *Store) Get(id string) (models.Account, bool) {
	a, ok := s.byId[id]
	if !ok {
		return models.Account{}, false
	}
	return a.Clone(), true
}

// Exists reports whether an account with this id is present
func (s *Store) Exists(id string) bool {
	_, ok := s.byId[id]
	return ok
}

// FindByLoginKey matches the key against id, username or email (email is
// case-insensitive). Uniqueness enforced at write time guarantees at most one match.
func (s *Store) FindByLoginKey(key string) (models.Account, bool) {
	if key == "" {
		return models.Account{}, false
	}
	owner, ok := s.loginKeyOwner(key)
	if !ok {
		return models.Account{}, false
	}
	return s.Get(owner)
}

func (s *Store) UpdateBalance(id string, newBalance int64) error {
	if newBalance < 0 {
		return fmt.Errorf("%w: balance cannot be negative, got %d", models.ErrInvalidAmount, newBalance)
	}
	return s.replace(id, func(a *models.Account) error {
		a.Balance = newBalance
		return nil
	})
}

// AppendNotification inserts the notification at the head of the inbox
func (s *Store) AppendNotification(id string, n models.Notification) error {
	return s.replace(id, func(a *models.Account) error {
		inbox := make([]models.Notification, 0, len(a.Inbox)+1)
		inbox = append(inbox, n)
		a.Inbox = append(inbox, a.Inbox...)
		return nil
	})
}

func (s *Store) SetStatus(id string, status models.AccountStatus) error {
	return s.replace(id, func(a *models.Account) error {
		a.Status = status
		return nil
	})
}

// SetCredentials replaces the credentials, keeping the username unique among login keys
func (s *Store) SetCredentials(id string, creds models.Credentials) error {
	if creds.Username != "" {
		if owner, taken := s.loginKeyOwner(creds.Username); taken && owner != id {
			return fmt.Errorf("%w: username %q already used by %s", models.ErrDuplicateIdentity, creds.Username, owner)
		}
	}
	return s.replace(id, func(a *models.Account) error {
		a.Credentials = creds
		return nil
	})
}

// Remove hard-deletes the account
func (s *Store) Remove(id string) error {
	if _, ok := s.byId[id]; !ok {
		return fmt.Errorf("%w: account %s", models.ErrNotFound, id)
	}
	delete(s.byId, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of every account in registration order
func (s *Store) List() []models.Account {
	accounts := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		accounts = append(accounts, s.byId[id].Clone())
	}
	return accounts
}

func (s *Store) Len() int {
	return len(s.order)
}

// Clone returns an independent deep copy of the store
func (s *Store) Clone() *Store {
	c := &Store{
		order: make([]string, len(s.order)),
		byId:  make(map[string]models.Account, len(s.byId)),
	}
	copy(c.order, s.order)
	for id, a := range s.byId {
		c.byId[id] = a.Clone()
	}
	return c
}

func (s *Store) replace(id string, mutate func(a *models.Account) error) error {
	current, ok := s.byId[id]
	if !ok {
		return fmt.Errorf("%w: account %s", models.ErrNotFound, id)
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	s.byId[id] = next
	return nil
}

func (s *Store) loginKeyOwner(key string) (string, bool) {
	if _, ok := s.byId[key]; ok {
		return key, true
	}
	for _, id := range s.order {
		a := s.byId[id]
		if a.Credentials.Username != "" && a.Credentials.Username == key {
			return id, true
		}
		if a.Email != "" && strings.EqualFold(a.Email, key) {
			return id, true
		}
	}
	return "", false
}
