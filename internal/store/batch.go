package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// execBatch sends a queued batch and sums the affected-row counts.
func execBatch(ctx context.Context, db *pgxpool.Pool, batch *pgx.Batch, n int) (int, error) {
	results := db.SendBatch(ctx, batch)
	defer results.Close()

	affected := 0
	for i := 0; i < n; i++ {
		ct, err := results.Exec()
		if err != nil {
			return 0, fmt.Errorf("batch upsert: %w", err)
		}
		affected += int(ct.RowsAffected())
	}

	return affected, nil
}
