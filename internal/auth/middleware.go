package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/observability"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	Owner     session.Owner
	Token     string
	ExpiresAt time.Time
}

// AuthMiddleware validates bearer tokens against the session store.
type AuthMiddleware struct {
	authenticator *session.Authenticator
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authenticator *session.Authenticator, metrics *observability.Metrics, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{authenticator: authenticator, metrics: metrics, logger: logger}
}

// Handle enforces authentication for protected routes. Failures stop the
// request before any handler runs.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		m.metrics.RecordAuthFailure("missing")
		return apperrors.NewUnauthorized("missing authorization header")
	}

	sess, err := m.authenticator.Authenticate(c.UserContext(), authHeader)
	if err != nil {
		reason := failureReason(err)
		if reason == "" {
			return apperrors.MapError(err)
		}
		m.metrics.RecordAuthFailure(reason)
		m.logger.Debug("authentication rejected", zap.String("reason", reason), zap.String("path", c.Path()))
		return apperrors.NewAuthError(err)
	}

	c.Locals(principalKey, &Principal{
		Owner:     sess.Owner,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
	return c.Next()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, session.ErrMalformedCredential):
		return "malformed"
	case errors.Is(err, session.ErrUnsupportedScheme):
		return "scheme"
	case errors.Is(err, session.ErrInvalidOrExpiredToken):
		return "invalid_or_expired"
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
