package syncer

import (
	"errors"
	"net/url"
	"strings"

	"github.com/EJPOP/trade-system/internal/api"
	"github.com/EJPOP/trade-system/internal/model"
)

// isRetryable reports whether a fetch failure is worth another attempt:
// connection-level failures, HTTP 429/5xx, or transient-looking messages
// when only text survived the error path.
func isRetryable(err error) bool {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	m := strings.ToLower(err.Error())
	return strings.Contains(m, "timeout") ||
		strings.Contains(m, "connection reset") ||
		strings.Contains(m, "temporarily unavailable")
}

// isSkippable reports whether the upstream denied access. KRX has no data to
// serve for some dates/markets and answers 403, so the day is recorded as
// skipped rather than failed.
func isSkippable(err error) bool {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.IsForbidden() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "forbidden")
}

// classify turns an unrecovered sync error into a skipped or failed result.
func (s *Syncer) classify(dataset, basDd, market string, err error) model.SyncResult {
	msg := err.Error()

	if isSkippable(err) {
		s.logger.Info("sync skipped",
			"dataset", dataset,
			"bas_dd", basDd,
			"market", market,
			"message", msg,
		)
		return model.SkippedResult(basDd, market, msg)
	}

	s.logger.Warn("sync failed",
		"dataset", dataset,
		"bas_dd", basDd,
		"market", market,
		"message", msg,
	)
	return model.FailedResult(basDd, market, msg)
}

// mergeErrors deduplicates and joins non-empty messages.
func mergeErrors(messages ...string) string {
	seen := make(map[string]bool, len(messages))
	var parts []string
	for _, m := range messages {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		parts = append(parts, m)
	}
	return strings.Join(parts, " | ")
}
