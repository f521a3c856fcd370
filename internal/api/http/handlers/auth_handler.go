package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supply-portal/internal/api/dto"
	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/service"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

const tokenType = "bearer"

// AuthHandler exposes login and logout for admins and accounts.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// AdminLogin handles POST /admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	sess, err := h.auth.LoginAdmin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Message:   "admin login successful",
		Token:     sess.Token,
		TokenType: tokenType,
		ExpiresAt: sess.ExpiresAt,
	})
}

// UserLogin handles POST /login.
func (h *AuthHandler) UserLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	account, sess, err := h.auth.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Message:   "login successful",
		Token:     sess.Token,
		TokenType: tokenType,
		ExpiresAt: sess.ExpiresAt,
		Username:  account.Username,
	})
}

// Logout handles POST /logout and POST /admin/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	if err := h.auth.Logout(c.UserContext(), header); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "logged out"})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.MeResponse{
		Kind:      string(principal.Owner.Kind),
		ID:        principal.Owner.ID,
		Username:  principal.Owner.Username,
		ExpiresAt: principal.ExpiresAt,
	})
}
