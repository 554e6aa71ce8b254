package syncer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

type fetchFunc func(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)

// fetchWithRetry performs a fetch with bounded exponential backoff and
// jitter. Only retryable failures are reattempted; structure errors and
// access denials surface immediately.
func (s *Syncer) fetchWithRetry(ctx context.Context, basDd string, market model.Market, fetch fetchFunc) ([]model.RawRecord, error) {
	var lastErr error
	backoff := s.cfg.RetryBackoff

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			s.logger.Warn("retrying fetch",
				"attempt", attempt,
				"backoff", jitter,
				"bas_dd", basDd,
				"market", market,
				"error", lastErr,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		records, err := fetch(ctx, basDd, market)
		if err == nil {
			return records, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
