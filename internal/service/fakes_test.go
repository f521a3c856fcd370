package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

type fakeAccounts struct {
	mu   sync.Mutex
	rows map[string]domain.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{rows: make(map[string]domain.Account)}
}

func (f *fakeAccounts) Create(_ context.Context, a *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, a *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccounts) List(context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Account, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAccounts) ExistsConflict(_ context.Context, username, email string, excludeID *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeSuppliers struct {
	rows map[string]domain.Supplier
}

func newFakeSuppliers() *fakeSuppliers {
	return &fakeSuppliers{rows: make(map[string]domain.Supplier)}
}

func (f *fakeSuppliers) Create(_ context.Context, s *domain.Supplier) error {
	s.ID = uuid.NewString()
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSuppliers) GetByID(_ context.Context, id string) (*domain.Supplier, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (f *fakeSuppliers) ListView(context.Context) ([]domain.SupplierView, error) {
	out := make([]domain.SupplierView, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, domain.SupplierView{Supplier: s})
	}
	return out, nil
}

func (f *fakeSuppliers) Patch(_ context.Context, id string, p domain.SupplierPatch) (*domain.Supplier, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.LegalName != nil {
		s.LegalName = *p.LegalName
	}
	if p.Phone != nil {
		s.Phone = p.Phone
	}
	if p.TelegramID != nil {
		s.TelegramID = p.TelegramID
	}
	if p.EquipmentName != nil {
		s.EquipmentName = *p.EquipmentName
	}
	if p.EquipmentParams != nil {
		s.EquipmentParams = p.EquipmentParams
	}
	f.rows[id] = s
	return &s, nil
}

func (f *fakeSuppliers) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeProducts struct {
	rows map[string]domain.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{rows: make(map[string]domain.Product)}
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	p.ID = uuid.NewString()
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (f *fakeProducts) List(_ context.Context, supplierID *string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.rows {
		if supplierID == nil || p.SupplierID == *supplierID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Patch(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.PriceCents != nil {
		p.PriceCents = *patch.PriceCents
	}
	if patch.Params != nil {
		p.Params = patch.Params
	}
	f.rows[id] = p
	return &p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeApplications struct {
	rows map[string]domain.Application
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{rows: make(map[string]domain.Application)}
}

func (f *fakeApplications) Create(_ context.Context, a *domain.Application) error {
	a.ID = uuid.NewString()
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeApplications) UpdateContent(_ context.Context, a *domain.Application, requireStatus *domain.ApplicationStatus) error {
	row, ok := f.rows[a.ID]
	if !ok || (requireStatus != nil && row.Status != *requireStatus) {
		return pgx.ErrNoRows
	}
	row.ProductID = a.ProductID
	row.Title = a.Title
	row.Description = a.Description
	row.Quantity = a.Quantity
	f.rows[a.ID] = row
	a.Status = row.Status
	return nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	row, ok := f.rows[id]
	if !ok || row.Status != from {
		return nil, pgx.ErrNoRows
	}
	row.Status = to
	f.rows[id] = row
	return &row, nil
}

func (f *fakeApplications) GetByID(_ context.Context, id string) (*domain.Application, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (f *fakeApplications) List(_ context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range f.rows {
		if filter.AccountID != nil && a.AccountID != *filter.AccountID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApplications) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

type fakeHistory struct {
	rows    []domain.ApplicationHistory
	failErr error
}

func (f *fakeHistory) Create(_ context.Context, e *domain.ApplicationHistory) error {
	if f.failErr != nil {
		return f.failErr
	}
	e.ID = uuid.NewString()
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeHistory) ListByApplication(_ context.Context, id string) ([]domain.ApplicationHistory, error) {
	out := make([]domain.ApplicationHistory, 0)
	for _, e := range f.rows {
		if e.ApplicationID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTransactor restores both fakes when fn fails, the way a rolled back
// transaction would.
type fakeTransactor struct {
	applications *fakeApplications
	history      *fakeHistory
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(tx repository.ApplicationTx) error) error {
	rows := make(map[string]domain.Application, len(f.applications.rows))
	for id, a := range f.applications.rows {
		rows[id] = a
	}
	entries := append([]domain.ApplicationHistory(nil), f.history.rows...)

	if err := fn(repository.ApplicationTx{Applications: f.applications, History: f.history}); err != nil {
		f.applications.rows = rows
		f.history.rows = entries
		return err
	}
	return nil
}

var adminOwner = session.Owner{Kind: session.OwnerAdmin, ID: AdminOwnerID, Username: "admin"}

func randomUser() session.Owner {
	return session.Owner{Kind: session.OwnerUser, ID: uuid.NewString(), Username: gofakeit.Username()}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	require.Equal(t, code, de.Code)
}
