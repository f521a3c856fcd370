package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/supply-portal/internal/domain"
)

// ApplicationHistoryRepository stores audit entries for applications.
type ApplicationHistoryRepository interface {
	Create(ctx context.Context, entry *domain.ApplicationHistory) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationHistory, error)
}

type applicationHistoryRepository struct {
	db DBTX
}

// NewApplicationHistoryRepository builds repository.
func NewApplicationHistoryRepository(pool *pgxpool.Pool) ApplicationHistoryRepository {
	return &applicationHistoryRepository{db: pool}
}

func (r *applicationHistoryRepository) Create(ctx context.Context, entry *domain.ApplicationHistory) error {
	const query = `
        INSERT INTO application_history (application_id, changed_by_kind, changed_by_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.ApplicationID,
		entry.ChangedByKind,
		entry.ChangedByID,
		entry.ChangeType,
		entry.OldValue,
		entry.NewValue,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *applicationHistoryRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationHistory, error) {
	const query = `
        SELECT id, application_id, changed_by_kind, changed_by_id, change_type, old_value, new_value, created_at
        FROM application_history WHERE application_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.ApplicationHistory, 0)
	for rows.Next() {
		var entry domain.ApplicationHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.ApplicationID,
			&entry.ChangedByKind,
			&entry.ChangedByID,
			&entry.ChangeType,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
