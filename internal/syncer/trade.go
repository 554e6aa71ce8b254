package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

// SyncDailyTrade synchronizes one day of daily trade records. A (basDd,
// market) unit with any stored rows is skipped without fetching; the day is
// never re-fetched automatically, so forcing a refresh means clearing the
// day out of band.
func (s *Syncer) SyncDailyTrade(ctx context.Context, basDd, market string) (model.SyncResult, error) {
	sel, err := model.ParseSelector(market, string(model.KOSPI))
	if err != nil {
		return model.SyncResult{}, &ValidationError{Msg: err.Error()}
	}

	if sel == model.SelectorAll {
		return s.syncBoth(ctx, basDd, func(ctx context.Context, m model.Market) model.SyncResult {
			return s.syncTradeOne(ctx, basDd, m)
		}), nil
	}
	return s.syncTradeOne(ctx, basDd, model.Market(sel)), nil
}

// SyncDailyTradeRange synchronizes daily trades over [from, to] inclusive.
func (s *Syncer) SyncDailyTradeRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error) {
	return s.syncRange(ctx, "daily_trade", from, to, market, string(model.KOSPI), delay, s.SyncDailyTrade)
}

func (s *Syncer) syncTradeOne(ctx context.Context, basDd string, market model.Market) model.SyncResult {
	existing, err := s.trades.CountByDateMarket(ctx, basDd, market.String())
	if err != nil {
		return s.classify("daily_trade", basDd, market.String(), err)
	}
	if existing > 0 {
		s.logger.Info("daily trade already synced",
			"bas_dd", basDd,
			"market", market,
			"rows", existing,
		)
		return model.SkippedResult(basDd, market.String(), fmt.Sprintf("%d rows already present", existing))
	}

	records, err := s.fetchWithRetry(ctx, basDd, market, s.client.FetchDailyTrade)
	if err != nil {
		return s.classify("daily_trade", basDd, market.String(), err)
	}

	rows := make([]model.DailyTradeRow, 0, len(records))
	for _, rec := range records {
		if row := model.DailyTradeRowFromRecord(basDd, market, rec); row != nil {
			rows = append(rows, *row)
		}
	}

	affected, err := s.trades.UpsertBatch(ctx, rows)
	if err != nil {
		return s.classify("daily_trade", basDd, market.String(), err)
	}

	s.logger.Info("daily trade synced",
		"bas_dd", basDd,
		"market", market,
		"fetched", len(rows),
		"affected", affected,
	)
	return model.SuccessResult(basDd, market.String(), len(rows), affected)
}
