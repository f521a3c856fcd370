package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/supply-portal/internal/api/dto"
	"github.com/spec-kit/supply-portal/internal/service"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// ProductsHandler manages product endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// List GET /products?supplier_id=.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	var supplierID *string
	if raw := c.Query("supplier_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.NewValidationError("supplier_id must be a valid UUID", nil)
		}
		id := parsed.String()
		supplierID = &id
	}
	products, err := h.service.List(c.UserContext(), supplierID)
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.NewProductResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Create POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	var req dto.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), owner, service.ProductCreateInput{
		SupplierID:  req.SupplierID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Params:      req.Params,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Update PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	owner, err := currentOwner(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProductRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), owner, id, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
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
