// Package database provides connection pool management for PostgreSQL.
//
// All KRX reference data (the ticker master plus the three daily datasets)
// lives in one database, written exclusively through upserts keyed by
// natural identity.
package database
