package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supply-portal/internal/domain"
)

func fakeSupplierInput() SupplierCreateInput {
	phone := gofakeit.Phone()
	return SupplierCreateInput{
		LegalName:       gofakeit.Company(),
		Phone:           &phone,
		EquipmentName:   gofakeit.Noun(),
		EquipmentParams: map[string]any{"power_kw": 15},
	}
}

func TestSupplierOwnership(t *testing.T) {
	svc := NewSupplierService(newFakeSuppliers(), nil)
	ctx := context.Background()
	creator, stranger := randomUser(), randomUser()

	supplier, err := svc.Create(ctx, creator, fakeSupplierInput())
	require.NoError(t, err)
	require.NotNil(t, supplier.CreatedBy)
	assert.Equal(t, creator.ID, *supplier.CreatedBy)

	name := "Renamed LLC"
	_, err = svc.Update(ctx, stranger, supplier.ID, domain.SupplierPatch{LegalName: &name})
	requireCode(t, err, "FORBIDDEN")

	updated, err := svc.Update(ctx, creator, supplier.ID, domain.SupplierPatch{LegalName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.LegalName)
	assert.Equal(t, supplier.EquipmentName, updated.EquipmentName)

	requireCode(t, svc.Delete(ctx, stranger, supplier.ID), "FORBIDDEN")
	require.NoError(t, svc.Delete(ctx, adminOwner, supplier.ID))
	_, err = svc.Get(ctx, supplier.ID)
	requireCode(t, err, "NOT_FOUND")
}

func TestSupplierEmptyPatch(t *testing.T) {
	svc := NewSupplierService(newFakeSuppliers(), nil)
	_, err := svc.Update(context.Background(), adminOwner, "any", domain.SupplierPatch{})
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestAdminCreatedSupplierHasNoCreator(t *testing.T) {
	svc := NewSupplierService(newFakeSuppliers(), nil)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, adminOwner, fakeSupplierInput())
	require.NoError(t, err)
	assert.Nil(t, supplier.CreatedBy)

	name := "x"
	_, err = svc.Update(ctx, randomUser(), supplier.ID, domain.SupplierPatch{LegalName: &name})
	requireCode(t, err, "FORBIDDEN")
}

func TestProductService(t *testing.T) {
	suppliers := newFakeSuppliers()
	supplierSvc := NewSupplierService(suppliers, nil)
	svc := NewProductService(newFakeProducts(), suppliers, nil)
	ctx := context.Background()
	owner := randomUser()

	supplier, err := supplierSvc.Create(ctx, owner, fakeSupplierInput())
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner, ProductCreateInput{SupplierID: "missing", Name: "Pump"})
	requireCode(t, err, "NOT_FOUND")

	product, err := svc.Create(ctx, owner, ProductCreateInput{SupplierID: supplier.ID, Name: "Pump", PriceCents: 129900})
	require.NoError(t, err)
	_, err = svc.Create(ctx, adminOwner, ProductCreateInput{SupplierID: supplier.ID, Name: "Valve"})
	require.NoError(t, err)

	list, err := svc.List(ctx, &supplier.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	price := int64(99900)
	updated, err := svc.Update(ctx, owner, product.ID, domain.ProductPatch{PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, price, updated.PriceCents)
	assert.Equal(t, "Pump", updated.Name)

	_, err = svc.Update(ctx, owner, product.ID, domain.ProductPatch{})
	requireCode(t, err, "VALIDATION_FAILED")
	requireCode(t, svc.Delete(ctx, randomUser(), product.ID), "FORBIDDEN")
	require.NoError(t, svc.Delete(ctx, owner, product.ID))
}
