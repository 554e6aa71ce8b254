package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EJPOP/trade-system/internal/model"
)

// IndexPriceRepo persists index daily prices keyed by (bas_dd, market, idx_nm).
type IndexPriceRepo struct {
	db *pgxpool.Pool
}

// NewIndexPriceRepo creates a new IndexPriceRepo.
func NewIndexPriceRepo(db *pgxpool.Pool) *IndexPriceRepo {
	return &IndexPriceRepo{db: db}
}

// UpsertBatch inserts or updates rows by natural key and returns the number
// of rows affected. An empty batch is a no-op.
func (r *IndexPriceRepo) UpsertBatch(ctx context.Context, rows []model.IndexDailyPriceRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO krx_index_daily_price
				(bas_dd, market, idx_nm, clpr, vs, fluc_rt,
				 opnprc, hgprc, lwprc, acc_trdvol, acc_trdval)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (bas_dd, market, idx_nm) DO UPDATE SET
				clpr = EXCLUDED.clpr,
				vs = EXCLUDED.vs,
				fluc_rt = EXCLUDED.fluc_rt,
				opnprc = EXCLUDED.opnprc,
				hgprc = EXCLUDED.hgprc,
				lwprc = EXCLUDED.lwprc,
				acc_trdvol = EXCLUDED.acc_trdvol,
				acc_trdval = EXCLUDED.acc_trdval
		`, row.BasDd, row.Market, row.IdxNm, row.Clpr, row.Vs, row.FlucRt,
			row.Opnprc, row.Hgprc, row.Lwprc, row.AccTrdvol, row.AccTrdval)
	}

	return execBatch(ctx, r.db, batch, len(rows))
}

// FindByDateMarket returns all rows for one (basDd, market) ordered by name.
func (r *IndexPriceRepo) FindByDateMarket(ctx context.Context, basDd, market string) ([]model.IndexDailyPriceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bas_dd, market, idx_nm, clpr, vs, fluc_rt,
		       opnprc, hgprc, lwprc, acc_trdvol, acc_trdval
		FROM krx_index_daily_price
		WHERE bas_dd = $1 AND market = $2
		ORDER BY idx_nm
	`, basDd, market)
	if err != nil {
		return nil, fmt.Errorf("find index prices: %w", err)
	}
	defer rows.Close()

	var out []model.IndexDailyPriceRow
	for rows.Next() {
		var m model.IndexDailyPriceRow
		if err := rows.Scan(&m.BasDd, &m.Market, &m.IdxNm, &m.Clpr, &m.Vs, &m.FlucRt,
			&m.Opnprc, &m.Hgprc, &m.Lwprc, &m.AccTrdvol, &m.AccTrdval); err != nil {
			return nil, fmt.Errorf("scan index price row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
