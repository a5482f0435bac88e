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

// Package ledger is the Nóvares ledger engine. Every mutating operation runs
// inside one critical section guarding the account store and the transaction
// log, and is persisted write-through before it becomes visible as committed.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"novares-ledger-go/internal/accounts"
	"novares-ledger-go/internal/authority"
	"novares-ledger-go/internal/membership"
	"novares-ledger-go/internal/metrics"
	"novares-ledger-go/internal/models"
	"novares-ledger-go/internal/notify"
	"novares-ledger-go/internal/reference"
	"novares-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	mu           sync.RWMutex
	accounts     *accounts.Store
	transactions []models.Transaction // newest first

	backend    store.PersistenceBackend
	registry   *membership.Registry
	dispatcher *notify.Dispatcher
	refs       *reference.Generator
	authority  *authority.Authority
	metrics    *metrics.Collector

	starterBalance  int64
	registryOptions []membership.Option
	now             func() time.Time
	newId           func() string
}

type Option func(*Service)

func WithAuthority(a *authority.Authority) Option {
	return func(s *Service) { s.authority = a }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

func WithStarterBalance(n int64) Option {
	return func(s *Service) { s.starterBalance = n }
}

func WithReferenceGenerator(g *reference.Generator) Option {
	return func(s *Service) { s.refs = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRegistryOptions forwards options to the membership registry
func WithRegistryOptions(opts ...membership.Option) Option {
	return func(s *Service) { s.registryOptions = append(s.registryOptions, opts...) }
}

// New loads the persisted state once and returns a ready engine
func New(ctx context.Context, backend store.PersistenceBackend, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("persistence backend is required")
	}

	s := &Service{
		backend:        backend,
		refs:           reference.NewGenerator(),
		authority:      authority.New(models.AdminConfig{}),
		starterBalance: 100,
		now:            time.Now,
		newId:          func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.starterBalance < 0 {
		return nil, fmt.Errorf("starter balance cannot be negative, got %d", s.starterBalance)
	}

	s.dispatcher = notify.NewDispatcher().WithClock(s.now)
	registryOpts := append([]membership.Option{membership.WithClock(s.now)}, s.registryOptions...)
	s.registry = membership.NewRegistry(s.refs, s.dispatcher, s.starterBalance, registryOpts...)

	state, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to load ledger state: %w", models.ErrPersistenceFailure, err)
	}
	s.accounts, err = accounts.NewStoreFrom(state.Accounts)
	if err != nil {
		return nil, fmt.Errorf("unable to restore accounts: %w", err)
	}
	s.transactions = cloneTransactions(state.Transactions)

	s.refreshGauges()
	zap.L().Info("Ledger loaded",
		zap.Int("accounts", s.accounts.Len()),
		zap.Int("transactions", len(s.transactions)))
	return s, nil
}

// mutate runs fn under the write lock and saves the resulting state.
// If fn or the save fails the state from before the call is restored.
func (s *Service) mutate(ctx context.Context, operation string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accountsBefore := s.accounts.Clone()
	transactionsBefore := cloneTransactions(s.transactions)

	err := fn()
	if err == nil {
		err = s.persist(ctx)
	}
	if err != nil {
		s.accounts = accountsBefore
		s.transactions = transactionsBefore
	}

	s.refreshGauges()
	s.metrics.ObserveOperation(operation, err)
	return err
}

func (s *Service) persist(ctx context.Context) error {
	state := &models.State{
		Accounts:     s.accounts.List(),
		Transactions: cloneTransactions(s.transactions),
	}

	start := time.Now()
	err := s.backend.Save(ctx, state)
	s.metrics.ObserveSave(time.Since(start), err)
	if err != nil {
		zap.L().Error("Failed to persist ledger state, mutation rolled back", zap.Error(err))
		return fmt.Errorf("%w: %w", models.ErrPersistenceFailure, err)
	}
	return nil
}

// requireAdmin records rejected admin calls in metrics
func (s *Service) requireAdmin(ctx context.Context, operation string) (*authority.Session, error) {
	session, err := authority.Require(ctx)
	if err != nil {
		zap.L().Warn("Administrative operation without session", zap.String("operation", operation))
		s.metrics.ObserveOperation(operation, err)
		return nil, err
	}
	return session, nil
}

// refreshGauges must be called with the lock held
func (s *Service) refreshGauges() {
	if s.metrics == nil {
		return
	}
	byStatus := map[models.AccountStatus]int{}
	for _, a := range s.accounts.List() {
		byStatus[a.Status]++
	}
	pending := 0
	for _, t := range s.transactions {
		if t.Status == models.TransactionPending {
			pending++
		}
	}
	s.metrics.SetLedgerSize(byStatus, pending)
}

// Snapshot returns a deep copy of the whole ledger state
func (s *Service) Snapshot() *models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &models.State{
		Accounts:     s.accounts.List(),
		Transactions: cloneTransactions(s.transactions),
	}
}

func cloneTransactions(in []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(in))
	copy(out, in)
	return out
}
