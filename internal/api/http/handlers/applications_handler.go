package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supply-portal/internal/api/dto"
	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/service"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// ApplicationsHandler manages application endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// List GET /applications?status=.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	var status *domain.ApplicationStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := domain.ApplicationStatus(strings.ToUpper(raw))
		if !s.Valid() {
			return apperrors.NewValidationError("unknown application status", map[string]any{"status": raw})
		}
		status = &s
	}
	apps, err := h.service.List(c.UserContext(), owner, status)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewApplicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	app, err := h.service.Get(c.UserContext(), owner, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// Create POST /applications.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	app, err := h.service.Create(c.UserContext(), owner, applicationInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// Update PUT /applications/:id.
func (h *ApplicationsHandler) Update(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	app, err := h.service.Update(c.UserContext(), owner, id, applicationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// UpdateStatus PATCH /applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	app, err := h.service.UpdateStatus(c.UserContext(), owner, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// Delete DELETE /applications/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), owner, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// History GET /applications/:id/history.
func (h *ApplicationsHandler) History(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	entries, err := h.service.History(c.UserContext(), owner, id)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewApplicationHistoryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func applicationInput(req dto.ApplicationRequest) service.ApplicationInput {
	return service.ApplicationInput{
		ProductID:   req.ProductID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
	}
}
