package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// UpdateContent rewrites the editable fields and leaves status alone.
	// When requireStatus is set the row only matches in that status;
	// pgx.ErrNoRows is returned when nothing matched.
	UpdateContent(ctx context.Context, app *domain.Application, requireStatus *domain.ApplicationStatus) error
	// UpdateStatus moves id from one status to another, returning
	// pgx.ErrNoRows if the row is gone or no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error)
	Delete(ctx context.Context, id string) error
}

type applicationRepository struct {
	db DBTX
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{db: pool}
}

const applicationColumns = `id, account_id, product_id, title, description, quantity, status, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (account_id, product_id, title, description, quantity, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		app.AccountID,
		app.ProductID,
		app.Title,
		app.Description,
		app.Quantity,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) UpdateContent(ctx context.Context, app *domain.Application, requireStatus *domain.ApplicationStatus) error {
	args := []any{app.ProductID, app.Title, app.Description, app.Quantity, app.ID}
	query := `
        UPDATE applications SET product_id=$1, title=$2, description=$3, quantity=$4, updated_at=NOW()
        WHERE id=$5`
	if requireStatus != nil {
		args = append(args, *requireStatus)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	query += " RETURNING status, updated_at"
	return r.db.QueryRow(ctx, query, args...).Scan(&app.Status, &app.UpdatedAt)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	const query = `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3
        RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRow(ctx, query, to, id, from))
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("account_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY created_at DESC`,
		applicationColumns, strings.Join(clauses, " AND "))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID,
		&app.AccountID,
		&app.ProductID,
		&app.Title,
		&app.Description,
		&app.Quantity,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
