package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EJPOP/trade-system/internal/model"
)

// DailyPriceRepo persists typed OHLC rows keyed by (bas_dd, market, isu_cd).
type DailyPriceRepo struct {
	db *pgxpool.Pool
}

// NewDailyPriceRepo creates a new DailyPriceRepo.
func NewDailyPriceRepo(db *pgxpool.Pool) *DailyPriceRepo {
	return &DailyPriceRepo{db: db}
}

// UpsertBatch inserts or updates rows by natural key and returns the number
// of rows affected. An empty batch is a no-op.
func (r *DailyPriceRepo) UpsertBatch(ctx context.Context, rows []model.DailyPriceRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO krx_daily_price
				(bas_dd, market, isu_cd, isu_nm, sect_tp_nm,
				 tdd_clsprc, cmpprevdd_prc, fluc_rt, tdd_opnprc, tdd_hgprc, tdd_lwprc,
				 acc_trdvol, acc_trdval, mktcap, list_shrs)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (bas_dd, market, isu_cd) DO UPDATE SET
				isu_nm = EXCLUDED.isu_nm,
				sect_tp_nm = EXCLUDED.sect_tp_nm,
				tdd_clsprc = EXCLUDED.tdd_clsprc,
				cmpprevdd_prc = EXCLUDED.cmpprevdd_prc,
				fluc_rt = EXCLUDED.fluc_rt,
				tdd_opnprc = EXCLUDED.tdd_opnprc,
				tdd_hgprc = EXCLUDED.tdd_hgprc,
				tdd_lwprc = EXCLUDED.tdd_lwprc,
				acc_trdvol = EXCLUDED.acc_trdvol,
				acc_trdval = EXCLUDED.acc_trdval,
				mktcap = EXCLUDED.mktcap,
				list_shrs = EXCLUDED.list_shrs
		`, row.BasDd, row.Market, row.IsuCd, row.IsuNm, row.SectTpNm,
			row.TddClsprc, row.CmpprevddPrc, row.FlucRt, row.TddOpnprc, row.TddHgprc, row.TddLwprc,
			row.AccTrdvol, row.AccTrdval, row.Mktcap, row.ListShrs)
	}

	return execBatch(ctx, r.db, batch, len(rows))
}

// FindByDateMarket returns all rows for one (basDd, market) ordered by code.
func (r *DailyPriceRepo) FindByDateMarket(ctx context.Context, basDd, market string) ([]model.DailyPriceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bas_dd, market, isu_cd, isu_nm, sect_tp_nm,
		       tdd_clsprc, cmpprevdd_prc, fluc_rt, tdd_opnprc, tdd_hgprc, tdd_lwprc,
		       acc_trdvol, acc_trdval, mktcap, list_shrs
		FROM krx_daily_price
		WHERE bas_dd = $1 AND market = $2
		ORDER BY isu_cd
	`, basDd, market)
	if err != nil {
		return nil, fmt.Errorf("find daily prices: %w", err)
	}
	defer rows.Close()

	var out []model.DailyPriceRow
	for rows.Next() {
		var m model.DailyPriceRow
		if err := rows.Scan(&m.BasDd, &m.Market, &m.IsuCd, &m.IsuNm, &m.SectTpNm,
			&m.TddClsprc, &m.CmpprevddPrc, &m.FlucRt, &m.TddOpnprc, &m.TddHgprc, &m.TddLwprc,
			&m.AccTrdvol, &m.AccTrdval, &m.Mktcap, &m.ListShrs); err != nil {
			return nil, fmt.Errorf("scan daily price row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
