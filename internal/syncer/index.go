package syncer

import (
	"context"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

// SyncIndexDailyPrice synchronizes one day of index daily prices.
func (s *Syncer) SyncIndexDailyPrice(ctx context.Context, basDd, market string) (model.SyncResult, error) {
	sel, err := model.ParseSelector(market, model.SelectorAll)
	if err != nil {
		return model.SyncResult{}, &ValidationError{Msg: err.Error()}
	}

	if sel == model.SelectorAll {
		return s.syncBoth(ctx, basDd, func(ctx context.Context, m model.Market) model.SyncResult {
			return s.syncIndexOne(ctx, basDd, m)
		}), nil
	}
	return s.syncIndexOne(ctx, basDd, model.Market(sel)), nil
}

// SyncIndexDailyPriceRange synchronizes index prices over [from, to] inclusive.
func (s *Syncer) SyncIndexDailyPriceRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error) {
	return s.syncRange(ctx, "index_daily_price", from, to, market, model.SelectorAll, delay, s.SyncIndexDailyPrice)
}

func (s *Syncer) syncIndexOne(ctx context.Context, basDd string, market model.Market) model.SyncResult {
	records, err := s.fetchWithRetry(ctx, basDd, market, s.client.FetchIndexDailyPrice)
	if err != nil {
		return s.classify("index_daily_price", basDd, market.String(), err)
	}

	rows := make([]model.IndexDailyPriceRow, 0, len(records))
	for _, rec := range records {
		if row := model.IndexDailyPriceRowFromRecord(basDd, market, rec); row != nil {
			rows = append(rows, *row)
		}
	}

	affected, err := s.indexes.UpsertBatch(ctx, rows)
	if err != nil {
		return s.classify("index_daily_price", basDd, market.String(), err)
	}

	s.logger.Info("index daily price synced",
		"bas_dd", basDd,
		"market", market,
		"fetched", len(rows),
		"affected", affected,
	)
	return model.SuccessResult(basDd, market.String(), len(rows), affected)
}
