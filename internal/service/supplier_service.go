package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// SupplierCreateInput describes a new supplier.
type SupplierCreateInput struct {
	LegalName       string
	Phone           *string
	TelegramID      *string
	EquipmentName   string
	EquipmentParams map[string]any
}

// SupplierService coordinates supplier workflows.
type SupplierService struct {
	suppliers repository.SupplierRepository
	logger    *zap.Logger
}

// NewSupplierService builds the service.
func NewSupplierService(suppliers repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{suppliers: suppliers, logger: logger}
}

// List returns the supplier overview.
func (s *SupplierService) List(ctx context.Context) ([]domain.SupplierView, error) {
	return s.suppliers.ListView(ctx)
}

// Get loads a supplier.
func (s *SupplierService) Get(ctx context.Context, id string) (*domain.Supplier, error) {
	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "supplier", id)
	}
	return supplier, nil
}

// Create stores a supplier owned by the caller.
func (s *SupplierService) Create(ctx context.Context, owner session.Owner, in SupplierCreateInput) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		LegalName:       in.LegalName,
		Phone:           in.Phone,
		TelegramID:      in.TelegramID,
		EquipmentName:   in.EquipmentName,
		EquipmentParams: in.EquipmentParams,
		CreatedBy:       creatorOf(owner),
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID), zap.String("owner", owner.Username))
	return supplier, nil
}

// Update applies a partial update. Only the creator or an admin may do so.
func (s *SupplierService) Update(ctx context.Context, owner session.Owner, id string, patch domain.SupplierPatch) (*domain.Supplier, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("no fields provided for update", nil)
	}
	if err := s.authorize(ctx, owner, id); err != nil {
		return nil, err
	}
	supplier, err := s.suppliers.Patch(ctx, id, patch)
	if err != nil {
		return nil, notFoundOr(err, "supplier", id)
	}
	s.logger.Info("supplier updated", zap.String("supplier_id", id), zap.String("owner", owner.Username))
	return supplier, nil
}

// Delete removes a supplier. Only the creator or an admin may do so.
func (s *SupplierService) Delete(ctx context.Context, owner session.Owner, id string) error {
	if err := s.authorize(ctx, owner, id); err != nil {
		return err
	}
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return notFoundOr(err, "supplier", id)
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id), zap.String("owner", owner.Username))
	return nil
}

func (s *SupplierService) authorize(ctx context.Context, owner session.Owner, id string) error {
	current, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "supplier", id)
	}
	if !canModify(owner, current.CreatedBy) {
		return apperrors.NewForbidden("only the creator of a supplier may modify it")
	}
	return nil
}
