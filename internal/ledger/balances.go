package ledger

import (
	"context"
	"fmt"
	"math"
	"strings"

	"novares-ledger-go/internal/models"
	"novares-ledger-go/internal/notify"

	"go.uber.org/zap"
)

// OverrideBalance sets the balance to an absolute value outside the transfer
// flow and tells the member about it.
func (s *Service) OverrideBalance(ctx context.Context, accountId string, newBalance int64) (models.Account, error) {
	session, err := s.requireAdmin(ctx, "override_balance")
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	var previous int64
	err = s.mutate(ctx, "override_balance", func() error {
		if newBalance < 0 {
			return fmt.Errorf("%w: balance cannot be negative, got %d", models.ErrInvalidAmount, newBalance)
		}
		current, ok := s.accounts.Get(accountId)
		if !ok {
			return fmt.Errorf("%w: account %s", models.ErrNotFound, accountId)
		}
		previous = current.Balance
		if err := s.accounts.UpdateBalance(accountId, newBalance); err != nil {
			return err
		}
		s.dispatcher.Send(s.accounts, accountId, notify.BalanceOverridden(newBalance))
		account, _ = s.accounts.Get(accountId)
		return nil
	})
	if err != nil {
		zap.L().Warn("Balance override refused", zap.String("account_id", accountId), zap.Error(err))
		return models.Account{}, err
	}

	zap.L().Info("Balance overridden",
		zap.String("account_id", accountId),
		zap.Int64("previous_balance", previous),
		zap.Int64("new_balance", newBalance),
		zap.String("admin", session.Admin))
	return account, nil
}

// IssueBonus credits amount on top of the current balance and drops a bonus
// card in the member's inbox.
func (s *Service) IssueBonus(ctx context.Context, accountId, bonusName string, amount int64) (models.Account, error) {
	session, err := s.requireAdmin(ctx, "issue_bonus")
	if err != nil {
		return models.Account{}, err
	}

	bonusName = strings.TrimSpace(bonusName)
	var account models.Account
	err = s.mutate(ctx, "issue_bonus", func() error {
		if amount <= 0 {
			return fmt.Errorf("%w: bonus must be positive, got %d", models.ErrInvalidAmount, amount)
		}
		if bonusName == "" {
			return fmt.Errorf("%w: bonus name is required", models.ErrMissingReason)
		}
		current, ok := s.accounts.Get(accountId)
		if !ok {
			return fmt.Errorf("%w: account %s", models.ErrNotFound, accountId)
		}
		if current.Balance > math.MaxInt64-amount {
			return fmt.Errorf("%w: balance would overflow", models.ErrInvalidAmount)
		}
		if err := s.accounts.UpdateBalance(accountId, current.Balance+amount); err != nil {
			return err
		}
		s.dispatcher.SendBonus(s.accounts, accountId, bonusName, amount)
		account, _ = s.accounts.Get(accountId)
		return nil
	})
	if err != nil {
		zap.L().Warn("Bonus refused", zap.String("account_id", accountId), zap.Error(err))
		return models.Account{}, err
	}

	zap.L().Info("Bonus issued",
		zap.String("account_id", accountId),
		zap.String("bonus", bonusName),
		zap.Int64("amount", amount),
		zap.String("admin", session.Admin))
	return account, nil
}
