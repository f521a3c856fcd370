package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supply-portal/internal/api/dto"
	"github.com/spec-kit/supply-portal/internal/service"
)

// SuppliersHandler manages supplier endpoints.
type SuppliersHandler struct {
	service *service.SupplierService
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(supplierService *service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{service: supplierService}
}

// List GET /suppliers.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SupplierResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewSupplierViewResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /suppliers/:id.
func (h *SuppliersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	supplier, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Create POST /suppliers.
func (h *SuppliersHandler) Create(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	var req dto.CreateSupplierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	supplier, err := h.service.Create(c.UserContext(), owner, service.SupplierCreateInput{
		LegalName:       req.LegalName,
		Phone:           req.Phone,
		TelegramID:      req.TelegramID,
		EquipmentName:   req.EquipmentName,
		EquipmentParams: req.EquipmentParams,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Update PUT /suppliers/:id.
func (h *SuppliersHandler) Update(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSupplierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	supplier, err := h.service.Update(c.UserContext(), owner, id, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupplierResponse(supplier)})
}

// Delete DELETE /suppliers/:id.
func (h *SuppliersHandler) Delete(c *fiber.Ctx) error {
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
