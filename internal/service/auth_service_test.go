package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/config"
	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/observability"
	"github.com/spec-kit/supply-portal/internal/session"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AdminUsername: "root",
			AdminPassword: "s3cret",
			BcryptCost:    bcrypt.MinCost,
		},
		Session: config.SessionConfig{
			AdminTTL: 30 * time.Minute,
			UserTTL:  8 * time.Hour,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAccounts, *session.Authenticator) {
	t.Helper()
	accounts := newFakeAccounts()
	authenticator := session.NewAuthenticator(session.NewMemoryStore(), nil, nil)
	svc, err := NewAuthService(testConfig(), AuthDependencies{
		AccountRepo:   accounts,
		Authenticator: authenticator,
		Metrics:       observability.NewMetrics(),
	})
	require.NoError(t, err)
	return svc, accounts, authenticator
}

func TestLoginAdmin(t *testing.T) {
	svc, _, authenticator := newTestAuthService(t)
	ctx := context.Background()

	sess, err := svc.LoginAdmin(ctx, "root", "s3cret")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), sess.ExpiresAt, 5*time.Second)

	got, err := authenticator.Authenticate(ctx, "Bearer "+sess.Token)
	require.NoError(t, err)
	assert.True(t, got.Owner.IsAdmin())
	assert.Equal(t, "root", got.Owner.Username)
}

func TestLoginAdminRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.LoginAdmin(ctx, "root", "wrong")
	requireCode(t, err, "UNAUTHORIZED")
	_, err = svc.LoginAdmin(ctx, "other", "s3cret")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestLoginUser(t *testing.T) {
	svc, accounts, authenticator := newTestAuthService(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, &domain.Account{Username: "ivan", PasswordHash: hash, Email: "ivan@example.com", IsActive: true}))

	account, sess, err := svc.LoginUser(ctx, "ivan", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ivan", account.Username)

	got, err := authenticator.Authenticate(ctx, "Bearer "+sess.Token)
	require.NoError(t, err)
	assert.Equal(t, session.OwnerUser, got.Owner.Kind)
	assert.Equal(t, account.ID, got.Owner.ID)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), got.ExpiresAt, 5*time.Second)
}

func TestLoginUserFailures(t *testing.T) {
	svc, accounts, _ := newTestAuthService(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, &domain.Account{Username: "off", PasswordHash: hash, Email: "off@example.com", IsActive: false}))

	_, _, err = svc.LoginUser(ctx, "nobody", "hunter22")
	requireCode(t, err, "UNAUTHORIZED")
	_, _, err = svc.LoginUser(ctx, "off", "bad")
	requireCode(t, err, "UNAUTHORIZED")
	_, _, err = svc.LoginUser(ctx, "off", "hunter22")
	requireCode(t, err, "FORBIDDEN")
}

func TestLogout(t *testing.T) {
	svc, _, authenticator := newTestAuthService(t)
	ctx := context.Background()

	sess, err := svc.LoginAdmin(ctx, "root", "s3cret")
	require.NoError(t, err)
	header := "Bearer " + sess.Token

	require.NoError(t, svc.Logout(ctx, header))
	require.NoError(t, svc.Logout(ctx, header))
	_, err = authenticator.Authenticate(ctx, header)
	assert.ErrorIs(t, err, session.ErrInvalidOrExpiredToken)

	requireCode(t, svc.Logout(ctx, "garbage"), "UNAUTHORIZED")
}
