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

// RequestTransfer validates and records a pending transfer. Balances are not
// touched: funds stay unreserved until an administrator approves.
//
// Validation order, first failure wins: amount, reason, sender, recipient, funds.
func (s *Service) RequestTransfer(ctx context.Context, senderId, receiverId string, amount int64, reason string) (models.Transaction, error) {
	var tx models.Transaction
	err := s.mutate(ctx, "request_transfer", func() error {
		if amount <= 0 {
			return fmt.Errorf("%w: amount must be positive, got %d", models.ErrInvalidAmount, amount)
		}
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return models.ErrMissingReason
		}

		sender, ok := s.accounts.Get(senderId)
		if !ok {
			return fmt.Errorf("%w: sender %s", models.ErrNotFound, senderId)
		}
		if sender.Status != models.StatusActive {
			return fmt.Errorf("%w: sender %s is %s", models.ErrNotActive, senderId, sender.Status)
		}

		receiver, err := s.lookupRecipient(senderId, receiverId)
		if err != nil {
			return err
		}
		if amount > sender.Balance {
			return fmt.Errorf("%w: balance %d, requested %d", models.ErrInsufficientFunds, sender.Balance, amount)
		}

		ref, err := s.refs.UniqueReference(s.referenceTaken)
		if err != nil {
			return fmt.Errorf("unable to generate reference: %w", err)
		}

		tx = models.Transaction{
			Id:        s.newId(),
			Reference: ref,
			Reason:    reason,
			FromId:    sender.Id,
			FromName:  sender.DisplayName(),
			ToId:      receiver.Id,
			ToName:    receiver.DisplayName(),
			ToCode:    receiver.Id,
			Amount:    amount,
			Status:    models.TransactionPending,
			CreatedAt: s.now(),
		}
		s.transactions = append([]models.Transaction{tx}, s.transactions...)
		return nil
	})
	if err != nil {
		zap.L().Warn("Transfer request refused",
			zap.String("sender_id", senderId),
			zap.String("receiver_id", receiverId),
			zap.Int64("amount", amount),
			zap.Error(err))
		return models.Transaction{}, err
	}

	zap.L().Info("Transfer requested",
		zap.String("transaction_id", tx.Id),
		zap.String("reference", tx.Reference),
		zap.String("sender_id", tx.FromId),
		zap.String("receiver_id", tx.ToId),
		zap.Int64("amount", tx.Amount))
	return tx, nil
}

// ApproveTransaction moves the funds, refreshes the receiver name snapshot and
// notifies both parties. If the sender can no longer cover the amount the
// transaction stays pending.
func (s *Service) ApproveTransaction(ctx context.Context, transactionId string) (models.Transaction, error) {
	session, err := s.requireAdmin(ctx, "approve_transaction")
	if err != nil {
		return models.Transaction{}, err
	}

	var tx models.Transaction
	err = s.mutate(ctx, "approve_transaction", func() error {
		i, err := s.pendingIndex(transactionId)
		if err != nil {
			return err
		}
		tx = s.transactions[i]

		sender, ok := s.accounts.Get(tx.FromId)
		if !ok {
			return fmt.Errorf("%w: sender %s no longer exists", models.ErrNotFound, tx.FromId)
		}
		receiver, ok := s.accounts.Get(tx.ToId)
		if !ok {
			return fmt.Errorf("%w: receiver %s no longer exists", models.ErrNotFound, tx.ToId)
		}
		if sender.Balance < tx.Amount {
			return fmt.Errorf("%w: balance %d, transfer %d", models.ErrInsufficientFunds, sender.Balance, tx.Amount)
		}
		if receiver.Balance > math.MaxInt64-tx.Amount {
			return fmt.Errorf("%w: receiver balance would overflow", models.ErrInvalidAmount)
		}

		if err := s.accounts.UpdateBalance(sender.Id, sender.Balance-tx.Amount); err != nil {
			return err
		}
		if err := s.accounts.UpdateBalance(receiver.Id, receiver.Balance+tx.Amount); err != nil {
			return err
		}

		tx.Status = models.TransactionApproved
		tx.ToName = receiver.DisplayName()
		s.transactions[i] = tx

		s.dispatcher.Send(s.accounts, sender.Id, notify.TransferApproved(tx, receiver.Name))
		s.dispatcher.Send(s.accounts, receiver.Id, notify.TransferReceived(tx, sender.Name))
		return nil
	})
	if err != nil {
		zap.L().Warn("Approval refused", zap.String("transaction_id", transactionId), zap.Error(err))
		return models.Transaction{}, err
	}

	zap.L().Info("Transfer approved",
		zap.String("transaction_id", tx.Id),
		zap.String("reference", tx.Reference),
		zap.Int64("amount", tx.Amount),
		zap.String("admin", session.Admin))
	return tx, nil
}

// RejectTransaction closes a pending transaction without moving funds.
// No notification is sent.
func (s *Service) RejectTransaction(ctx context.Context, transactionId string) (models.Transaction, error) {
	session, err := s.requireAdmin(ctx, "reject_transaction")
	if err != nil {
		return models.Transaction{}, err
	}

	var tx models.Transaction
	err = s.mutate(ctx, "reject_transaction", func() error {
		i, err := s.pendingIndex(transactionId)
		if err != nil {
			return err
		}
		s.transactions[i].Status = models.TransactionRejected
		tx = s.transactions[i]
		return nil
	})
	if err != nil {
		zap.L().Warn("Rejection refused", zap.String("transaction_id", transactionId), zap.Error(err))
		return models.Transaction{}, err
	}

	zap.L().Info("Transfer rejected",
		zap.String("transaction_id", tx.Id),
		zap.String("reference", tx.Reference),
		zap.String("admin", session.Admin))
	return tx, nil
}

// ListTransactionsFor returns the transactions an account took part in, newest
// first. A non-empty suffixFilter keeps only references whose last four
// characters contain it (case-sensitive).
func (s *Service) ListTransactionsFor(accountId, suffixFilter string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.accounts.Exists(accountId) {
		return nil, fmt.Errorf("%w: account %s", models.ErrNotFound, accountId)
	}
	return s.filter(func(t models.Transaction) bool {
		return t.Involves(accountId) && matchesSuffix(t, suffixFilter)
	}), nil
}

// SearchTransactions filters the whole log by reference suffix
func (s *Service) SearchTransactions(ctx context.Context, suffixFilter string) ([]models.Transaction, error) {
	if _, err := s.requireAdmin(ctx, "search_transactions"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(t models.Transaction) bool { return matchesSuffix(t, suffixFilter) }), nil
}

// ListPendingTransactions is the approval queue, newest first
func (s *Service) ListPendingTransactions(ctx context.Context) ([]models.Transaction, error) {
	if _, err := s.requireAdmin(ctx, "list_pending_transactions"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(t models.Transaction) bool { return t.Status == models.TransactionPending }), nil
}

// TransferComposition gathers what an outbound composer needs to describe a
// transfer request. Balances reflect the sender's current balance.
func (s *Service) TransferComposition(transactionId string) (models.TransferComposition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(transactionId)
	if i < 0 {
		return models.TransferComposition{}, fmt.Errorf("%w: transaction %s", models.ErrNotFound, transactionId)
	}
	tx := s.transactions[i]
	sender, ok := s.accounts.Get(tx.FromId)
	if !ok {
		return models.TransferComposition{}, fmt.Errorf("%w: sender %s", models.ErrNotFound, tx.FromId)
	}

	return models.TransferComposition{
		Reference:     tx.Reference,
		Reason:        tx.Reason,
		SenderId:      tx.FromId,
		SenderName:    tx.FromName,
		ReceiverId:    tx.ToId,
		ReceiverName:  tx.ToName,
		Amount:        tx.Amount,
		BalanceBefore: sender.Balance,
		BalanceAfter:  sender.Balance - tx.Amount,
	}, nil
}

func (s *Service) filter(keep func(models.Transaction) bool) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) indexOf(transactionId string) int {
	for i, t := range s.transactions {
		if t.Id == transactionId {
			return i
		}
	}
	return -1
}

func (s *Service) pendingIndex(transactionId string) (int, error) {
	i := s.indexOf(transactionId)
	if i < 0 {
		return -1, fmt.Errorf("%w: transaction %s", models.ErrNotFound, transactionId)
	}
	if status := s.transactions[i].Status; status.Terminal() {
		return -1, fmt.Errorf("%w: transaction %s is %s", models.ErrNotPending, transactionId, status)
	}
	return i, nil
}

func (s *Service) referenceTaken(ref string) bool {
	for _, t := range s.transactions {
		if t.Reference == ref {
			return true
		}
	}
	return false
}

func matchesSuffix(t models.Transaction, filter string) bool {
	return filter == "" || strings.Contains(t.ReferenceSuffix(), filter)
}
