package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// ProductCreateInput describes a new product.
type ProductCreateInput struct {
	SupplierID  string
	Name        string
	Description *string
	PriceCents  int64
	Params      map[string]any
}

// ProductService coordinates product workflows.
type ProductService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	logger    *zap.Logger
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, suppliers repository.SupplierRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, suppliers: suppliers, logger: logger}
}

// List returns products, optionally for one supplier.
func (s *ProductService) List(ctx context.Context, supplierID *string) ([]domain.Product, error) {
	return s.products.List(ctx, supplierID)
}

// Get loads a product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return product, nil
}

// Create stores a product for an existing supplier.
func (s *ProductService) Create(ctx context.Context, owner session.Owner, in ProductCreateInput) (*domain.Product, error) {
	if _, err := s.suppliers.GetByID(ctx, in.SupplierID); err != nil {
		return nil, notFoundOr(err, "supplier", in.SupplierID)
	}
	product := &domain.Product{
		SupplierID:  in.SupplierID,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Params:      in.Params,
		CreatedBy:   creatorOf(owner),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("supplier_id", product.SupplierID))
	return product, nil
}

// Update applies a partial update. Only the creator or an admin may do so.
func (s *ProductService) Update(ctx context.Context, owner session.Owner, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("no fields provided for update", nil)
	}
	if err := s.authorize(ctx, owner, id); err != nil {
		return nil, err
	}
	product, err := s.products.Patch(ctx, id, patch)
	if err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return product, nil
}

// Delete removes a product. Only the creator or an admin may do so.
func (s *ProductService) Delete(ctx context.Context, owner session.Owner, id string) error {
	if err := s.authorize(ctx, owner, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return notFoundOr(err, "product", id)
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *ProductService) authorize(ctx context.Context, owner session.Owner, id string) error {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "product", id)
	}
	if !canModify(owner, current.CreatedBy) {
		return apperrors.NewForbidden("only the creator of a product may modify it")
	}
	return nil
}
