package model

// SyncResult is the outcome of synchronizing one (basDd, market) unit.
//
// Exactly one of the three outcomes holds: success (Failed and Skipped both
// false), skipped, or failed. Saved mirrors Affected on success so callers
// summing "saved" keep working.
type SyncResult struct {
	BasDd    string `json:"basDd"`
	Market   string `json:"market"`
	Saved    int    `json:"saved"`
	Fetched  int    `json:"fetchedRows"`
	Affected int    `json:"upsertAffectedRows"`
	Failed   bool   `json:"failed"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// SuccessResult builds a successful result from fetch/upsert counts.
func SuccessResult(basDd, market string, fetched, affected int) SyncResult {
	return SyncResult{
		BasDd:    basDd,
		Market:   market,
		Saved:    affected,
		Fetched:  fetched,
		Affected: affected,
	}
}

// FailedResult builds a failed result carrying the error message.
func FailedResult(basDd, market, msg string) SyncResult {
	return SyncResult{BasDd: basDd, Market: market, Failed: true, Error: msg}
}

// SkippedResult builds a skipped result carrying the diagnostic message.
func SkippedResult(basDd, market, msg string) SyncResult {
	return SyncResult{BasDd: basDd, Market: market, Skipped: true, Error: msg}
}

// RangeSyncResult aggregates per-day results over a closed date interval.
type RangeSyncResult struct {
	JobID         string       `json:"jobId"`
	From          string       `json:"from"`
	To            string       `json:"to"`
	Market        string       `json:"market"`
	DelayMs       int64        `json:"delayMs"`
	TotalSaved    int          `json:"totalSaved"`
	TotalFetched  int          `json:"totalFetchedRows"`
	TotalAffected int          `json:"totalUpsertAffectedRows"`
	TotalFailed   int          `json:"totalFailed"`
	TotalSkipped  int          `json:"totalSkipped"`
	Results       []SyncResult `json:"results"`
}
