package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ApplicationTx holds application repositories bound to one transaction.
type ApplicationTx struct {
	Applications ApplicationRepository
	History      ApplicationHistoryRepository
}

// ApplicationTransactor runs fn in a transaction that commits only when fn
// returns nil.
type ApplicationTransactor interface {
	WithinTx(ctx context.Context, fn func(tx ApplicationTx) error) error
}

type applicationTransactor struct {
	pool *pgxpool.Pool
}

// NewApplicationTransactor builds a transactor over pool.
func NewApplicationTransactor(pool *pgxpool.Pool) ApplicationTransactor {
	return &applicationTransactor{pool: pool}
}

func (t *applicationTransactor) WithinTx(ctx context.Context, fn func(tx ApplicationTx) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(ApplicationTx{
			Applications: &applicationRepository{db: tx},
			History:      &applicationHistoryRepository{db: tx},
		})
	})
}
