package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/session"
	"github.com/spec-kit/supply-portal/internal/validation"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// bindJSON parses the request body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return validation.Struct(dst)
}

// pathID returns the :id parameter after checking it is a UUID.
func pathID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError("id must be a valid UUID", map[string]any{"id": raw})
	}
	return id.String(), nil
}

func currentOwner(c *fiber.Ctx) (session.Owner, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return session.Owner{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal.Owner, nil
}
