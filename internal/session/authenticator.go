package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const bearerScheme = "bearer"

// ParseCredential extracts the token from an "<scheme> <token>" header value.
// Exactly one space must separate the two parts and the scheme must be bearer.
func ParseCredential(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrMalformedCredential
	}
	if !strings.EqualFold(parts[0], bearerScheme) {
		return "", ErrUnsupportedScheme
	}
	return parts[1], nil
}

// Authenticator validates bearer credentials against a Store.
type Authenticator struct {
	store  Store
	now    Clock
	logger *zap.Logger
}

// NewAuthenticator builds an authenticator. A nil clock means time.Now.
func NewAuthenticator(store Store, clock Clock, logger *zap.Logger) *Authenticator {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{store: store, now: clock, logger: logger}
}

// Authenticate resolves the session carried by header. Expired entries are
// swept first and evicted on sight, so they never authenticate.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*Session, error) {
	token, err := ParseCredential(header)
	if err != nil {
		return nil, err
	}

	now := a.now()
	if removed, err := a.store.Sweep(ctx, now); err != nil {
		return nil, err
	} else if removed > 0 {
		a.logger.Debug("expired sessions swept", zap.Int("count", removed))
	}

	sess, err := a.store.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	if !sess.ValidAt(now) {
		if err := a.store.Remove(ctx, token); err != nil {
			a.logger.Warn("failed to evict expired session", zap.Error(err))
		}
		return nil, ErrInvalidOrExpiredToken
	}
	return sess, nil
}

// Revoke removes the session named by header. It succeeds whether or not
// the token was present.
func (a *Authenticator) Revoke(ctx context.Context, header string) error {
	token, err := ParseCredential(header)
	if err != nil {
		return err
	}
	return a.store.Remove(ctx, token)
}

// RevokeOwner removes every session held by owner, for instance after the
// backing account was deleted or deactivated.
func (a *Authenticator) RevokeOwner(ctx context.Context, owner Owner) error {
	removed, err := a.store.RemoveOwner(ctx, owner.Kind, owner.ID)
	if err != nil {
		return err
	}
	if removed > 0 {
		a.logger.Info("sessions revoked",
			zap.String("owner_kind", string(owner.Kind)),
			zap.String("owner_id", owner.ID),
			zap.Int("count", removed),
		)
	}
	return nil
}

// Issue creates a session for owner valid for ttl.
func (a *Authenticator) Issue(ctx context.Context, owner Owner, ttl time.Duration) (*Session, error) {
	return a.store.Create(ctx, owner, ttl)
}
