package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ownerLockTimeout bounds how long a write waits on another writer's owner lock.
const ownerLockTimeout = "5s"

// Transactor implements ports.DBTransactor on top of a Pool.
type Transactor struct {
	pool Pool
}

func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a transaction whose lock waits give up after ownerLockTimeout.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+ownerLockTimeout+"'"); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("setting lock_timeout: %w", err)
	}
	return tx, nil
}
