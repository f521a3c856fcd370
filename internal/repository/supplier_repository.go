package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// SupplierRepository manages supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	ListView(ctx context.Context) ([]domain.SupplierView, error)
	Patch(ctx context.Context, id string, patch domain.SupplierPatch) (*domain.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type supplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository builds the repository.
func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{pool: pool}
}

const supplierColumns = `id, legal_name, phone, telegram_id, equipment_name, equipment_params, created_by, created_at, updated_at`

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        INSERT INTO suppliers (legal_name, phone, telegram_id, equipment_name, equipment_params, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		supplier.LegalName,
		supplier.Phone,
		supplier.TelegramID,
		supplier.EquipmentName,
		supplier.EquipmentParams,
		supplier.CreatedBy,
	).Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	const query = `SELECT ` + supplierColumns + ` FROM suppliers WHERE id=$1`
	return scanSupplier(r.pool.QueryRow(ctx, query, id))
}

func (r *supplierRepository) ListView(ctx context.Context) ([]domain.SupplierView, error) {
	const query = `SELECT ` + supplierColumns + `, product_count FROM suppliers_view ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupplierView
	for rows.Next() {
		var v domain.SupplierView
		if err := rows.Scan(
			&v.ID,
			&v.LegalName,
			&v.Phone,
			&v.TelegramID,
			&v.EquipmentName,
			&v.EquipmentParams,
			&v.CreatedBy,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.ProductCount,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *supplierRepository) Patch(ctx context.Context, id string, patch domain.SupplierPatch) (*domain.Supplier, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.LegalName != nil {
		set("legal_name", *patch.LegalName)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.TelegramID != nil {
		set("telegram_id", *patch.TelegramID)
	}
	if patch.EquipmentName != nil {
		set("equipment_name", *patch.EquipmentName)
	}
	if patch.EquipmentParams != nil {
		set("equipment_params", patch.EquipmentParams)
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE suppliers SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), supplierColumns)
	return scanSupplier(r.pool.QueryRow(ctx, query, args...))
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := row.Scan(
		&s.ID,
		&s.LegalName,
		&s.Phone,
		&s.TelegramID,
		&s.EquipmentName,
		&s.EquipmentParams,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
