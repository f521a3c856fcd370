package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// AccountInput carries the full set of writable account fields.
type AccountInput struct {
	Username   string
	Password   string
	Email      string
	IsActive   *bool
	DeviceInfo map[string]any
}

// SessionRevoker ends every session held by an owner.
type SessionRevoker interface {
	RevokeOwner(ctx context.Context, owner session.Owner) error
}

// AccountService implements admin management of portal accounts.
type AccountService struct {
	accounts   repository.AccountRepository
	sessions   SessionRevoker
	bcryptCost int
	logger     *zap.Logger
}

// NewAccountService builds the service. sessions may be nil, in which case
// deleted or deactivated accounts keep their sessions until expiry.
func NewAccountService(accounts repository.AccountRepository, sessions SessionRevoker, bcryptCost int, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{accounts: accounts, sessions: sessions, bcryptCost: bcryptCost, logger: logger}
}

// List returns all accounts, newest first.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// Get loads an account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return account, nil
}

// Create registers a new account after checking username and email are free.
func (s *AccountService) Create(ctx context.Context, in AccountInput) (*domain.Account, error) {
	conflict, err := s.accounts.ExistsConflict(ctx, in.Username, in.Email, nil)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewConflict("user with this username or email already exists", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Username:              in.Username,
		PasswordHash:          hash,
		Email:                 in.Email,
		IsActive:              activeOrDefault(in.IsActive),
		LastUpdatedDeviceInfo: in.DeviceInfo,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("admin created user", zap.String("username", account.Username), zap.String("account_id", account.ID))
	return account, nil
}

// Update replaces every writable field of an account.
func (s *AccountService) Update(ctx context.Context, id string, in AccountInput) (*domain.Account, error) {
	conflict, err := s.accounts.ExistsConflict(ctx, in.Username, in.Email, &id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewConflict("username or email already exists for another user", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		ID:                    id,
		Username:              in.Username,
		PasswordHash:          hash,
		Email:                 in.Email,
		IsActive:              activeOrDefault(in.IsActive),
		LastUpdatedDeviceInfo: in.DeviceInfo,
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	s.logger.Info("admin updated user", zap.String("username", account.Username), zap.String("account_id", id))
	if !account.IsActive {
		s.revokeSessions(ctx, id)
	}
	return account, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return notFoundOr(err, "user", id)
	}
	s.logger.Info("admin deleted user", zap.String("account_id", id))
	s.revokeSessions(ctx, id)
	return nil
}

// revokeSessions runs after the account write has committed, so a failure is
// logged rather than reported as a failed request.
func (s *AccountService) revokeSessions(ctx context.Context, id string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RevokeOwner(ctx, session.Owner{Kind: session.OwnerUser, ID: id}); err != nil {
		s.logger.Error("failed to revoke account sessions", zap.String("account_id", id), zap.Error(err))
	}
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
