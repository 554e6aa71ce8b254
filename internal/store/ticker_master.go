package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EJPOP/trade-system/internal/model"
)

// TickerMasterRepo persists instrument master rows keyed by short code.
type TickerMasterRepo struct {
	db *pgxpool.Pool
}

// NewTickerMasterRepo creates a new TickerMasterRepo.
func NewTickerMasterRepo(db *pgxpool.Pool) *TickerMasterRepo {
	return &TickerMasterRepo{db: db}
}

// UpsertBatch inserts or updates rows by code and returns the number of rows
// affected. An empty batch is a no-op.
func (r *TickerMasterRepo) UpsertBatch(ctx context.Context, rows []model.TickerMasterRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO krx_ticker_master
				(code, isin, name_kr, name_kr_abbr, name_en, market,
				 sec_group, kind_stock_cert, list_date, par_value, list_shares)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (code) DO UPDATE SET
				isin = EXCLUDED.isin,
				name_kr = EXCLUDED.name_kr,
				name_kr_abbr = EXCLUDED.name_kr_abbr,
				name_en = EXCLUDED.name_en,
				market = EXCLUDED.market,
				sec_group = EXCLUDED.sec_group,
				kind_stock_cert = EXCLUDED.kind_stock_cert,
				list_date = EXCLUDED.list_date,
				par_value = EXCLUDED.par_value,
				list_shares = EXCLUDED.list_shares
		`, row.Code, row.ISIN, row.NameKr, row.NameKrAbbr, row.NameEn, row.Market,
			row.SecGroup, row.KindStockCert, row.ListDate, row.ParValue, row.ListShares)
	}

	return execBatch(ctx, r.db, batch, len(rows))
}

// FindByCode returns one instrument, nil when absent.
func (r *TickerMasterRepo) FindByCode(ctx context.Context, code string) (*model.TickerMasterRow, error) {
	row := r.db.QueryRow(ctx, `
		SELECT code, isin, name_kr, name_kr_abbr, name_en, market,
		       sec_group, kind_stock_cert, list_date, par_value, list_shares
		FROM krx_ticker_master
		WHERE code = $1
	`, code)

	var m model.TickerMasterRow
	err := row.Scan(&m.Code, &m.ISIN, &m.NameKr, &m.NameKrAbbr, &m.NameEn, &m.Market,
		&m.SecGroup, &m.KindStockCert, &m.ListDate, &m.ParValue, &m.ListShares)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ticker by code: %w", err)
	}
	return &m, nil
}

// FindByMarket returns all instruments of one market ordered by code.
func (r *TickerMasterRepo) FindByMarket(ctx context.Context, market string) ([]model.TickerMasterRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code, isin, name_kr, name_kr_abbr, name_en, market,
		       sec_group, kind_stock_cert, list_date, par_value, list_shares
		FROM krx_ticker_master
		WHERE market = $1
		ORDER BY code
	`, market)
	if err != nil {
		return nil, fmt.Errorf("find tickers by market: %w", err)
	}
	defer rows.Close()

	var out []model.TickerMasterRow
	for rows.Next() {
		var m model.TickerMasterRow
		if err := rows.Scan(&m.Code, &m.ISIN, &m.NameKr, &m.NameKrAbbr, &m.NameEn, &m.Market,
			&m.SecGroup, &m.KindStockCert, &m.ListDate, &m.ParValue, &m.ListShares); err != nil {
			return nil, fmt.Errorf("scan ticker row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
