package dto

import (
	"time"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// CreateSupplierRequest payload.
type CreateSupplierRequest struct {
	LegalName       string         `json:"legal_name" validate:"required,max=255"`
	Phone           *string        `json:"phone" validate:"omitempty,max=32"`
	TelegramID      *string        `json:"telegram_id" validate:"omitempty,max=64"`
	EquipmentName   string         `json:"equipment_name" validate:"required,max=255"`
	EquipmentParams map[string]any `json:"equipment_params"`
}

// UpdateSupplierRequest payload; omitted fields stay unchanged.
type UpdateSupplierRequest struct {
	LegalName       *string        `json:"legal_name" validate:"omitempty,min=1,max=255"`
	Phone           *string        `json:"phone" validate:"omitempty,max=32"`
	TelegramID      *string        `json:"telegram_id" validate:"omitempty,max=64"`
	EquipmentName   *string        `json:"equipment_name" validate:"omitempty,min=1,max=255"`
	EquipmentParams map[string]any `json:"equipment_params"`
}

// Patch converts the request to a domain patch.
func (r UpdateSupplierRequest) Patch() domain.SupplierPatch {
	return domain.SupplierPatch{
		LegalName:       r.LegalName,
		Phone:           r.Phone,
		TelegramID:      r.TelegramID,
		EquipmentName:   r.EquipmentName,
		EquipmentParams: r.EquipmentParams,
	}
}

// SupplierResponse payload.
type SupplierResponse struct {
	ID              string         `json:"id"`
	LegalName       string         `json:"legal_name"`
	Phone           *string        `json:"phone"`
	TelegramID      *string        `json:"telegram_id"`
	EquipmentName   string         `json:"equipment_name"`
	EquipmentParams map[string]any `json:"equipment_params"`
	CreatedBy       *string        `json:"created_by"`
	ProductCount    *int           `json:"product_count,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewSupplierResponse maps a supplier.
func NewSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:              s.ID,
		LegalName:       s.LegalName,
		Phone:           s.Phone,
		TelegramID:      s.TelegramID,
		EquipmentName:   s.EquipmentName,
		EquipmentParams: s.EquipmentParams,
		CreatedBy:       s.CreatedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// NewSupplierViewResponse maps a row of the supplier overview.
func NewSupplierViewResponse(v *domain.SupplierView) SupplierResponse {
	resp := NewSupplierResponse(&v.Supplier)
	count := v.ProductCount
	resp.ProductCount = &count
	return resp
}
