package dto

import (
	"time"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// ApplicationRequest payload for creating or replacing an application.
type ApplicationRequest struct {
	ProductID   *string `json:"product_id" validate:"omitempty,uuid"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=4000"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// ApplicationStatusRequest payload for PATCH /applications/:id/status.
type ApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" validate:"required,oneof=NEW IN_PROGRESS DONE CANCELLED"`
}

// ApplicationResponse payload.
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	AccountID   string                   `json:"account_id"`
	ProductID   *string                  `json:"product_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Quantity    int                      `json:"quantity"`
	Status      domain.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		AccountID:   a.AccountID,
		ProductID:   a.ProductID,
		Title:       a.Title,
		Description: a.Description,
		Quantity:    a.Quantity,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ApplicationHistoryResponse is one audit entry.
type ApplicationHistoryResponse struct {
	ID            string                       `json:"id"`
	ChangedByKind string                       `json:"changed_by_kind"`
	ChangedByID   string                       `json:"changed_by_id"`
	ChangeType    domain.ApplicationChangeType `json:"change_type"`
	OldValue      map[string]any               `json:"old_value"`
	NewValue      map[string]any               `json:"new_value"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// NewApplicationHistoryResponse maps an audit entry.
func NewApplicationHistoryResponse(e *domain.ApplicationHistory) ApplicationHistoryResponse {
	return ApplicationHistoryResponse{
		ID:            e.ID,
		ChangedByKind: e.ChangedByKind,
		ChangedByID:   e.ChangedByID,
		ChangeType:    e.ChangeType,
		OldValue:      e.OldValue,
		NewValue:      e.NewValue,
		CreatedAt:     e.CreatedAt,
	}
}
