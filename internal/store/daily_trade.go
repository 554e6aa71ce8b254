package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EJPOP/trade-system/internal/model"
)

// DailyTradeRepo persists daily trade rows keyed by (bas_dd, mkt_nm, isu_cd).
type DailyTradeRepo struct {
	db *pgxpool.Pool
}

// NewDailyTradeRepo creates a new DailyTradeRepo.
func NewDailyTradeRepo(db *pgxpool.Pool) *DailyTradeRepo {
	return &DailyTradeRepo{db: db}
}

// UpsertBatch inserts or updates rows by natural key and returns the number
// of rows affected. An empty batch is a no-op.
func (r *DailyTradeRepo) UpsertBatch(ctx context.Context, rows []model.DailyTradeRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO krx_daily_trade
				(bas_dd, isu_cd, isu_nm, mkt_nm, sect_tp_nm,
				 tdd_clsprc, cmpprevdd_prc, fluc_rt, tdd_opnprc, tdd_hgprc, tdd_lwprc,
				 acc_trdvol, acc_trdval, mktcap, list_shrs)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (bas_dd, mkt_nm, isu_cd) DO UPDATE SET
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
		`, row.BasDd, row.IsuCd, row.IsuNm, row.MktNm, row.SectTpNm,
			row.TddClsprc, row.CmpprevddPrc, row.FlucRt, row.TddOpnprc, row.TddHgprc, row.TddLwprc,
			row.AccTrdvol, row.AccTrdval, row.Mktcap, row.ListShrs)
	}

	return execBatch(ctx, r.db, batch, len(rows))
}

// CountByDateMarket counts stored rows for one (basDd, market) unit. Used as
// the idempotency check before fetching a day.
func (r *DailyTradeRepo) CountByDateMarket(ctx context.Context, basDd, market string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM krx_daily_trade
		WHERE bas_dd = $1 AND mkt_nm = $2
	`, basDd, market).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count daily trades: %w", err)
	}
	return n, nil
}

// FindByDateMarket returns all rows for one (basDd, market) ordered by code.
func (r *DailyTradeRepo) FindByDateMarket(ctx context.Context, basDd, market string) ([]model.DailyTradeRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bas_dd, isu_cd, isu_nm, mkt_nm, sect_tp_nm,
		       tdd_clsprc, cmpprevdd_prc, fluc_rt, tdd_opnprc, tdd_hgprc, tdd_lwprc,
		       acc_trdvol, acc_trdval, mktcap, list_shrs
		FROM krx_daily_trade
		WHERE bas_dd = $1 AND mkt_nm = $2
		ORDER BY isu_cd
	`, basDd, market)
	if err != nil {
		return nil, fmt.Errorf("find daily trades: %w", err)
	}
	defer rows.Close()

	var out []model.DailyTradeRow
	for rows.Next() {
		var m model.DailyTradeRow
		if err := scanDailyTrade(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindByDateCode returns one instrument's row for a date, nil when absent.
func (r *DailyTradeRepo) FindByDateCode(ctx context.Context, basDd, code string) (*model.DailyTradeRow, error) {
	row := r.db.QueryRow(ctx, `
		SELECT bas_dd, isu_cd, isu_nm, mkt_nm, sect_tp_nm,
		       tdd_clsprc, cmpprevdd_prc, fluc_rt, tdd_opnprc, tdd_hgprc, tdd_lwprc,
		       acc_trdvol, acc_trdval, mktcap, list_shrs
		FROM krx_daily_trade
		WHERE bas_dd = $1 AND isu_cd = $2
	`, basDd, code)

	var m model.DailyTradeRow
	err := scanDailyTrade(row, &m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanDailyTrade(row pgx.Row, m *model.DailyTradeRow) error {
	err := row.Scan(&m.BasDd, &m.IsuCd, &m.IsuNm, &m.MktNm, &m.SectTpNm,
		&m.TddClsprc, &m.CmpprevddPrc, &m.FlucRt, &m.TddOpnprc, &m.TddHgprc, &m.TddLwprc,
		&m.AccTrdvol, &m.AccTrdval, &m.Mktcap, &m.ListShrs)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("scan daily trade row: %w", err)
	}
	return err
}
