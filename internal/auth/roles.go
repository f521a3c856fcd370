package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// RequireAdmin ensures the caller holds an admin session.
func RequireAdmin() fiber.Handler {
	return requireKind(session.OwnerAdmin, "admin session required")
}

// RequireUser ensures the caller holds an account session.
func RequireUser() fiber.Handler {
	return requireKind(session.OwnerUser, "user session required")
}

func requireKind(kind session.OwnerKind, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Owner.Kind != kind {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated (admin or user).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
