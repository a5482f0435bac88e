package database

import (
	"context"
	"database/sql"
	"fmt"

	"novares-ledger-go/internal/models"
	"novares-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Load reads the full ledger state. An empty database yields an empty state.
func (s *Service) Load(ctx context.Context) (*models.State, error) {
	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(accounts))
	for i, a := range accounts {
		index[a.Id] = i
	}
	if err := s.loadNotifications(ctx, accounts, index); err != nil {
		return nil, err
	}

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Ledger state loaded",
		zap.Int("accounts", len(accounts)),
		zap.Int("transactions", len(transactions)))
	return &models.State{Accounts: accounts, Transactions: transactions}, nil
}

// Save replaces the stored state inside a single SQL transaction
func (s *Service) Save(ctx context.Context, state *models.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			zap.L().Warn("Failed to roll back state save", zap.Error(err))
		}
	}()

	for _, q := range []string{queryDeleteNotifications, queryDeleteTransactions, queryDeleteAccounts} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("unable to clear previous state: %w", err)
		}
	}

	for pos, a := range state.Accounts {
		_, err := tx.ExecContext(ctx, queryInsertAccount,
			a.Id, pos, a.Name, a.LastName, a.Country, a.Phone, a.Email,
			a.Credentials.Username, a.Credentials.PasswordHash, string(a.Status), a.Balance, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("unable to store account %s: %w", a.Id, err)
		}
		for npos, n := range a.Inbox {
			_, err := tx.ExecContext(ctx, queryInsertNotification,
				n.Id, a.Id, npos, string(n.Kind), n.Message, n.BonusName, n.Amount, n.Read, n.Timestamp)
			if err != nil {
				return fmt.Errorf("unable to store notification %s: %w", n.Id, err)
			}
		}
	}

	for pos, t := range state.Transactions {
		_, err := tx.ExecContext(ctx, queryInsertTransaction,
			t.Id, pos, t.Reference, t.Reason, t.FromId, t.FromName, t.ToId, t.ToName, t.ToCode,
			t.Amount, string(t.Status), t.CreatedAt)
		if err != nil {
			return fmt.Errorf("unable to store transaction %s: %w", t.Id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit state: %w", err)
	}
	return nil
}

func (s *Service) loadAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, querySelectAccounts)
	if err != nil {
		return nil, fmt.Errorf("unable to query accounts: %w", err)
	}
	defer closeRows(rows)

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		var status string
		err := rows.Scan(&a.Id, &a.Name, &a.LastName, &a.Country, &a.Phone, &a.Email,
			&a.Credentials.Username, &a.Credentials.PasswordHash, &status, &a.Balance, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan account row: %w", err)
		}
		a.Status = models.AccountStatus(status)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (s *Service) loadNotifications(ctx context.Context, accounts []models.Account, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, querySelectNotifications)
	if err != nil {
		return fmt.Errorf("unable to query notifications: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var n models.Notification
		var accountId, kind string
		err := rows.Scan(&n.Id, &accountId, &kind, &n.Message, &n.BonusName, &n.Amount, &n.Read, &n.Timestamp)
		if err != nil {
			return fmt.Errorf("unable to scan notification row: %w", err)
		}
		i, ok := index[accountId]
		if !ok {
			return fmt.Errorf("%w: notification %s belongs to unknown account %s", store.ErrCorruptState, n.Id, accountId)
		}
		n.Kind = models.NotificationKind(kind)
		accounts[i].Inbox = append(accounts[i].Inbox, n)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating notification rows: %w", err)
	}
	return nil
}

func (s *Service) loadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, querySelectTransactions)
	if err != nil {
		return nil, fmt.Errorf("unable to query transactions: %w", err)
	}
	defer closeRows(rows)

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var status string
		err := rows.Scan(&t.Id, &t.Reference, &t.Reason, &t.FromId, &t.FromName, &t.ToId, &t.ToName,
			&t.ToCode, &t.Amount, &status, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to scan transaction row: %w", err)
		}
		t.Status = models.TransactionStatus(status)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zap.L().Warn("Failed to close rows", zap.Error(err))
	}
}
