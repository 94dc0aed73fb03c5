package postgres

import (
	"context"
	"fmt"
)

// runInTx inicia una transacción sobre q, ejecuta fn con la tx y hace Commit o Rollback.
// Si q ya es una tx, pgx crea un savepoint.
func runInTx(ctx context.Context, q Querier, fn func(tx Querier) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
