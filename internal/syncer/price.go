package syncer

import (
	"context"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

// SyncDailyPrice synchronizes one day of typed OHLC rows. The dataset shares
// the bydd_trd payload with daily trades but always re-fetches: the typed
// projection is cheap to upsert in place.
func (s *Syncer) SyncDailyPrice(ctx context.Context, basDd, market string) (model.SyncResult, error) {
	sel, err := model.ParseSelector(market, model.SelectorAll)
	if err != nil {
		return model.SyncResult{}, &ValidationError{Msg: err.Error()}
	}

	if sel == model.SelectorAll {
		return s.syncBoth(ctx, basDd, func(ctx context.Context, m model.Market) model.SyncResult {
			return s.syncPriceOne(ctx, basDd, m)
		}), nil
	}
	return s.syncPriceOne(ctx, basDd, model.Market(sel)), nil
}

// SyncDailyPriceRange synchronizes daily prices over [from, to] inclusive.
func (s *Syncer) SyncDailyPriceRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error) {
	return s.syncRange(ctx, "daily_price", from, to, market, model.SelectorAll, delay, s.SyncDailyPrice)
}

func (s *Syncer) syncPriceOne(ctx context.Context, basDd string, market model.Market) model.SyncResult {
	records, err := s.fetchWithRetry(ctx, basDd, market, s.client.FetchDailyPrice)
	if err != nil {
		return s.classify("daily_price", basDd, market.String(), err)
	}

	rows := make([]model.DailyPriceRow, 0, len(records))
	for _, rec := range records {
		if row := model.DailyPriceRowFromRecord(basDd, market, rec); row != nil {
			rows = append(rows, *row)
		}
	}

	affected, err := s.prices.UpsertBatch(ctx, rows)
	if err != nil {
		return s.classify("daily_price", basDd, market.String(), err)
	}

	s.logger.Info("daily price synced",
		"bas_dd", basDd,
		"market", market,
		"fetched", len(rows),
		"affected", affected,
	)
	return model.SuccessResult(basDd, market.String(), len(rows), affected)
}
