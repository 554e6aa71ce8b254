// Package syncer orchestrates KRX dataset synchronization.
//
// One unit of work is a (basDd, market) pair for one dataset: optional
// idempotency check, fetch with bounded retry, normalize, batch upsert, and
// outcome classification into success/skipped/failed. The "ALL" selector
// fans out to KOSPI and KOSDAQ concurrently and merges their results. Range
// synchronization walks a closed date interval strictly sequentially with a
// configurable pause between days to stay under upstream rate limits.
//
// Failures inside a day are captured in its SyncResult and never abort a
// range; only request validation (bad interval, negative delay, unknown
// market) is returned as an error, before any network activity.
package syncer
