// Package store persists normalized KRX rows in PostgreSQL.
//
// Each dataset has its own repository with a batched upsert keyed by the
// row's natural identity (ON CONFLICT ... DO UPDATE), so re-synchronizing a
// day updates rows in place and never duplicates them. Rows are never
// deleted here.
package store
