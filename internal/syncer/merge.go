package syncer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/EJPOP/trade-system/internal/model"
)

// syncBoth runs one sync per concrete market concurrently and merges the
// results under the ALL selector. The two markets are independent, so the
// fan-out is safe; pacing between days stays with the range scheduler.
func (s *Syncer) syncBoth(ctx context.Context, basDd string, one func(ctx context.Context, market model.Market) model.SyncResult) model.SyncResult {
	var kospi, kosdaq model.SyncResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kospi = one(gctx, model.KOSPI)
		return nil
	})
	g.Go(func() error {
		kosdaq = one(gctx, model.KOSDAQ)
		return nil
	})
	_ = g.Wait() // per-market outcomes land in the results, never as errors

	return mergeResults(basDd, kospi, kosdaq)
}

// mergeResults combines two per-market results: counts sum, failed if either
// failed, skipped only if both skipped (a mixed success/skip day is not a
// skip), messages deduplicated.
func mergeResults(basDd string, a, b model.SyncResult) model.SyncResult {
	return model.SyncResult{
		BasDd:    basDd,
		Market:   model.SelectorAll,
		Saved:    a.Saved + b.Saved,
		Fetched:  a.Fetched + b.Fetched,
		Affected: a.Affected + b.Affected,
		Failed:   a.Failed || b.Failed,
		Skipped:  a.Skipped && b.Skipped,
		Error:    mergeErrors(a.Error, b.Error),
	}
}
