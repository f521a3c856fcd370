// Package session holds opaque bearer-token sessions and the authenticator
// that gates protected routes on them.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSessionNotFound is returned by Lookup when no entry exists for a token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidTTL is returned by Create for a zero or negative lifetime.
	ErrInvalidTTL = errors.New("session: ttl must be positive")

	// ErrMalformedCredential means the Authorization header is absent or not
	// of the form "<scheme> <token>".
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrUnsupportedScheme means the header names a scheme other than Bearer.
	ErrUnsupportedScheme = errors.New("unsupported authentication scheme")
	// ErrInvalidOrExpiredToken covers unknown, revoked and expired tokens alike.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// OwnerKind differentiates admin and account sessions.
type OwnerKind string

const (
	OwnerAdmin OwnerKind = "ADMIN"
	OwnerUser  OwnerKind = "USER"
)

// Owner identifies the principal a session was issued to.
type Owner struct {
	Kind     OwnerKind `json:"kind"`
	ID       string    `json:"id"`
	Username string    `json:"username"`
}

// IsAdmin reports whether the owner holds an admin session.
func (o Owner) IsAdmin() bool {
	return o.Kind == OwnerAdmin
}

// Session is a time-bounded grant identified by an opaque token.
type Session struct {
	Token     string    `json:"-"`
	Owner     Owner     `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidAt reports whether the session still authenticates at t.
func (s *Session) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// Store maps tokens to sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts a session for owner expiring ttl from now and returns its
	// token. A non-positive ttl fails with ErrInvalidTTL.
	Create(ctx context.Context, owner Owner, ttl time.Duration) (*Session, error)
	// Lookup returns the session for token regardless of expiry, or ErrSessionNotFound.
	Lookup(ctx context.Context, token string) (*Session, error)
	// Remove deletes the entry for token. Removing an absent token is not an error.
	Remove(ctx context.Context, token string) error
	// Sweep deletes every entry with ExpiresAt before now and returns how many it removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
	// RemoveOwner deletes every session issued to the given principal and
	// returns how many it removed.
	RemoveOwner(ctx context.Context, kind OwnerKind, id string) (int, error)
}

// Clock returns the current time.
type Clock func() time.Time

const tokenBytes = 32

// NewToken generates a cryptographically secure session token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
