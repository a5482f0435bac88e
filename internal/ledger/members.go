package ledger

import (
	"context"
	"fmt"
	"strings"

	"novares-ledger-go/internal/authority"
	"novares-ledger-go/internal/models"
	"novares-ledger-go/internal/notify"

	"go.uber.org/zap"
)

// RegisterAccount creates a pending account. The admission window is a
// caller policy and is not checked here.
func (s *Service) RegisterAccount(ctx context.Context, profile models.Profile) (models.Account, error) {
	app, err := s.registry.Prepare(profile)
	if err != nil {
		s.metrics.ObserveOperation("register_account", err)
		zap.L().Warn("Registration refused", zap.String("email", profile.Email), zap.Error(err))
		return models.Account{}, err
	}

	var account models.Account
	err = s.mutate(ctx, "register_account", func() error {
		var err error
		account, err = s.registry.Admit(s.accounts, app, s.idInLog)
		return err
	})
	if err != nil {
		zap.L().Warn("Registration refused", zap.String("email", profile.Email), zap.Error(err))
		return models.Account{}, err
	}
	return account, nil
}

// Authenticate resolves a login key (id, username or email) and checks the password
func (s *Service) Authenticate(loginKey, password string) (models.Account, error) {
	s.mu.RLock()
	account, err := s.registry.Authenticate(s.accounts, loginKey, password)
	s.mu.RUnlock()

	s.metrics.ObserveOperation("authenticate", err)
	if err != nil {
		zap.L().Warn("Member authentication failed", zap.String("error_kind", models.Kind(err)))
		return models.Account{}, err
	}
	return account, nil
}

// AuthenticateAdmin checks the administrator credentials and returns a session
// to be attached with authority.WithSession.
func (s *Service) AuthenticateAdmin(username, password, securityCode string) (*authority.Session, error) {
	session, err := s.authority.Authenticate(username, password, securityCode)
	s.metrics.ObserveOperation("authenticate_admin", err)
	return session, err
}

func (s *Service) ActivateAccount(ctx context.Context, accountId string) (models.Account, error) {
	session, err := s.requireAdmin(ctx, "activate_account")
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	err = s.mutate(ctx, "activate_account", func() error {
		var err error
		account, err = s.registry.Activate(s.accounts, accountId)
		return err
	})
	if err != nil {
		return models.Account{}, err
	}
	zap.L().Info("Activation committed", zap.String("account_id", accountId), zap.String("admin", session.Admin))
	return account, nil
}

// RejectRegistration discards a pending registration
func (s *Service) RejectRegistration(ctx context.Context, accountId string) error {
	session, err := s.requireAdmin(ctx, "reject_registration")
	if err != nil {
		return err
	}

	err = s.mutate(ctx, "reject_registration", func() error {
		return s.registry.Reject(s.accounts, accountId)
	})
	if err != nil {
		return err
	}
	zap.L().Info("Registration rejection committed", zap.String("account_id", accountId), zap.String("admin", session.Admin))
	return nil
}

// RemoveAccount hard-deletes an account. Its transactions stay in the log with
// their name snapshots; pending ones can no longer be approved.
func (s *Service) RemoveAccount(ctx context.Context, accountId string) error {
	session, err := s.requireAdmin(ctx, "remove_account")
	if err != nil {
		return err
	}

	err = s.mutate(ctx, "remove_account", func() error {
		return s.registry.Remove(s.accounts, accountId)
	})
	if err != nil {
		return err
	}
	zap.L().Info("Account removal committed", zap.String("account_id", accountId), zap.String("admin", session.Admin))
	return nil
}

func (s *Service) GetAccount(accountId string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts.Get(accountId)
	if !ok {
		return models.Account{}, fmt.Errorf("%w: account %s", models.ErrNotFound, accountId)
	}
	return account, nil
}

// ListAccounts returns every account in registration order
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if _, err := s.requireAdmin(ctx, "list_accounts"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.List(), nil
}

// LookupRecipient resolves a member code typed by a sender. The code is
// matched case-insensitively; the sender and non-active accounts never match.
func (s *Service) LookupRecipient(senderId, code string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupRecipient(senderId, code)
}

// lookupRecipient must be called with the lock held
func (s *Service) lookupRecipient(senderId, code string) (models.Account, error) {
	code = strings.TrimSpace(code)
	account, ok := s.accounts.Get(code)
	if !ok {
		account, ok = s.accounts.Get(strings.ToUpper(code))
	}
	if !ok {
		return models.Account{}, fmt.Errorf("%w: no member with code %q", models.ErrInvalidRecipient, code)
	}
	if account.Id == senderId {
		return models.Account{}, fmt.Errorf("%w: cannot transfer to yourself", models.ErrInvalidRecipient)
	}
	if account.Status != models.StatusActive {
		return models.Account{}, fmt.Errorf("%w: member %s is not active", models.ErrInvalidRecipient, account.Id)
	}
	return account, nil
}

// SeedFoundingMembers creates active accounts when the ledger holds none yet.
// It returns how many accounts were created.
func (s *Service) SeedFoundingMembers(ctx context.Context, members []models.FoundingMember) (int, error) {
	s.mu.RLock()
	seeded := s.accounts.Len() > 0
	s.mu.RUnlock()
	if seeded || len(members) == 0 {
		return 0, nil
	}

	created := 0
	err := s.mutate(ctx, "seed_founding_members", func() error {
		created = 0
		if s.accounts.Len() > 0 || len(members) == 0 {
			return nil
		}
		for _, m := range members {
			if m.Balance < 0 {
				return fmt.Errorf("%w: founding member %s has a negative balance", models.ErrInvalidAmount, m.Email)
			}
			id := strings.ToUpper(strings.TrimSpace(m.Id))
			if id == "" {
				var err error
				id, err = s.refs.UniqueMemberCode(s.memberIdTaken)
				if err != nil {
					return fmt.Errorf("unable to assign member code: %w", err)
				}
			} else if s.idInLog(id) {
				return fmt.Errorf("%w: member id %s belongs to a removed account", models.ErrDuplicateIdentity, id)
			}
			account := models.Account{
				Id:          id,
				Name:        m.Name,
				LastName:    m.LastName,
				Country:     m.Country,
				Phone:       m.Phone,
				Email:       m.Email,
				Credentials: models.Credentials{Username: id, PasswordHash: m.PasswordHash},
				Status:      models.StatusActive,
				Balance:     m.Balance,
				CreatedAt:   s.now(),
			}
			if !account.Credentials.Complete() {
				return fmt.Errorf("%w: founding member %s has no password hash", models.ErrInvalidProfile, m.Email)
			}
			if _, err := s.accounts.Create(account); err != nil {
				return err
			}
			s.dispatcher.Send(s.accounts, id, notify.FoundingWelcome(account))
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if created > 0 {
		zap.L().Info("Founding members seeded", zap.Int("count", created))
	}
	return created, nil
}

// memberIdTaken reports ids held by a live account or still referenced by
// the transaction log. Removed ids are never reissued.
func (s *Service) memberIdTaken(id string) bool {
	return s.accounts.Exists(id) || s.idInLog(id)
}

func (s *Service) idInLog(id string) bool {
	for _, t := range s.transactions {
		if t.Involves(id) {
			return true
		}
	}
	return false
}
