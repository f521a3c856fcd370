package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supply-portal/internal/api/dto"
	"github.com/spec-kit/supply-portal/internal/service"
)

// AccountsHandler exposes admin management of accounts.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// List GET /admin/users.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewUserResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/users/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	account, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// Create POST /admin/users.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	account, err := h.service.Create(c.UserContext(), accountInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// Update PUT /admin/users/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	account, err := h.service.Update(c.UserContext(), id, accountInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// Delete DELETE /admin/users/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func accountInput(req dto.UserRequest) service.AccountInput {
	return service.AccountInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		IsActive:   req.IsActive,
		DeviceInfo: req.LastUpdatedDeviceInfo,
	}
}
