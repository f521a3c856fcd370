package dto

import (
	"time"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// CreateProductRequest payload.
type CreateProductRequest struct {
	SupplierID  string         `json:"supplier_id" validate:"required,uuid"`
	Name        string         `json:"name" validate:"required,max=255"`
	Description *string        `json:"description"`
	PriceCents  int64          `json:"price_cents" validate:"gte=0"`
	Params      map[string]any `json:"params"`
}

// UpdateProductRequest payload; omitted fields stay unchanged.
type UpdateProductRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string        `json:"description"`
	PriceCents  *int64         `json:"price_cents" validate:"omitempty,gte=0"`
	Params      map[string]any `json:"params"`
}

// Patch converts the request to a domain patch.
func (r UpdateProductRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Params:      r.Params,
	}
}

// ProductResponse payload.
type ProductResponse struct {
	ID          string         `json:"id"`
	SupplierID  string         `json:"supplier_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	PriceCents  int64          `json:"price_cents"`
	Params      map[string]any `json:"params"`
	CreatedBy   *string        `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewProductResponse maps a product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Params:      p.Params,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
