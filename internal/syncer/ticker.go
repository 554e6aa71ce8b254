package syncer

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/EJPOP/trade-system/internal/model"
)

// SyncTickerMaster synchronizes the instrument master for one day. The ALL
// selector fetches both markets concurrently and upserts the merged row set
// in one batch; the master is always re-fetched, there is no idempotency
// short-circuit.
func (s *Syncer) SyncTickerMaster(ctx context.Context, basDd, market string) (model.SyncResult, error) {
	sel, err := model.ParseSelector(market, model.SelectorAll)
	if err != nil {
		return model.SyncResult{}, &ValidationError{Msg: err.Error()}
	}

	var rows []model.TickerMasterRow
	var fetchErr error

	if sel == model.SelectorAll {
		var kospi, kosdaq []model.TickerMasterRow
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var e error
			kospi, e = s.tickerRows(gctx, basDd, model.KOSPI)
			return e
		})
		g.Go(func() error {
			var e error
			kosdaq, e = s.tickerRows(gctx, basDd, model.KOSDAQ)
			return e
		})
		fetchErr = g.Wait()
		rows = append(kospi, kosdaq...)
	} else {
		rows, fetchErr = s.tickerRows(ctx, basDd, model.Market(sel))
	}

	if fetchErr != nil {
		return s.classify("ticker_master", basDd, sel, fetchErr), nil
	}

	affected, err := s.tickers.UpsertBatch(ctx, rows)
	if err != nil {
		return s.classify("ticker_master", basDd, sel, err), nil
	}

	s.logger.Info("ticker master synced",
		"bas_dd", basDd,
		"market", sel,
		"fetched", len(rows),
		"affected", affected,
	)
	return model.SuccessResult(basDd, sel, len(rows), affected), nil
}

// SyncTickerMasterRange synchronizes the master over [from, to] inclusive.
func (s *Syncer) SyncTickerMasterRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error) {
	return s.syncRange(ctx, "ticker_master", from, to, market, model.SelectorAll, delay, s.SyncTickerMaster)
}

func (s *Syncer) tickerRows(ctx context.Context, basDd string, market model.Market) ([]model.TickerMasterRow, error) {
	records, err := s.fetchWithRetry(ctx, basDd, market, s.client.FetchTickerMaster)
	if err != nil {
		return nil, err
	}

	rows := make([]model.TickerMasterRow, 0, len(records))
	for _, rec := range records {
		if row := model.TickerMasterRowFromRecord(market, rec); row != nil {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}
