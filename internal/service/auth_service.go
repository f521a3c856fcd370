package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/config"
	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/observability"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// AdminOwnerID identifies the configured administrator in session owners.
const AdminOwnerID = "admin"

// AuthService coordinates login and logout for admins and accounts.
type AuthService struct {
	accounts          repository.AccountRepository
	sessions          *session.Authenticator
	metrics           *observability.Metrics
	logger            *zap.Logger
	adminUsername     string
	adminPasswordHash string
	dummyHash         string
	sessionCfg        config.SessionConfig
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	AccountRepo   repository.AccountRepository
	Authenticator *session.Authenticator
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewAuthService builds the service. The admin password is hashed once here
// so it is never compared in plaintext.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	adminHash, err := auth.HashPassword(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	dummy, err := auth.HashPassword("not-a-real-password", cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:          deps.AccountRepo,
		sessions:          deps.Authenticator,
		metrics:           deps.Metrics,
		logger:            logger,
		adminUsername:     cfg.Auth.AdminUsername,
		adminPasswordHash: adminHash,
		dummyHash:         dummy,
		sessionCfg:        cfg.Session,
	}, nil
}

// LoginAdmin checks the configured admin credentials and opens an admin session.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*session.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passErr := auth.ComparePassword(s.adminPasswordHash, password)
	if !userOK || passErr != nil {
		s.metrics.RecordLogin(string(session.OwnerAdmin), false)
		s.logger.Warn("failed admin login attempt", zap.String("username", username))
		return nil, apperrors.NewUnauthorized("invalid admin credentials")
	}

	sess, err := s.sessions.Issue(ctx, session.Owner{
		Kind:     session.OwnerAdmin,
		ID:       AdminOwnerID,
		Username: s.adminUsername,
	}, s.sessionCfg.AdminTTL)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLogin(string(session.OwnerAdmin), true)
	s.logger.Info("successful admin login", zap.String("username", username))
	return sess, nil
}

// LoginUser authenticates an account by username and password.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (*domain.Account, *session.Session, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, err
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, nil, s.rejectUser(username)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, nil, s.rejectUser(username)
	}
	if !account.IsActive {
		s.metrics.RecordLogin(string(session.OwnerUser), false)
		return nil, nil, apperrors.NewForbidden("account is disabled")
	}

	sess, err := s.sessions.Issue(ctx, session.Owner{
		Kind:     session.OwnerUser,
		ID:       account.ID,
		Username: account.Username,
	}, s.sessionCfg.UserTTL)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.RecordLogin(string(session.OwnerUser), true)
	s.logger.Info("successful user login", zap.String("username", account.Username), zap.String("account_id", account.ID))
	return account, sess, nil
}

func (s *AuthService) rejectUser(username string) error {
	s.metrics.RecordLogin(string(session.OwnerUser), false)
	s.logger.Warn("failed user login attempt", zap.String("username", username))
	return apperrors.NewUnauthorized("invalid username or password")
}

// Logout revokes the session named by the authorization header. Unknown
// tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, authHeader string) error {
	if err := s.sessions.Revoke(ctx, authHeader); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
