// Package model defines shared data types for the KRX sync service.
//
// Conventions:
//   - Dates: 8-digit strings in YYYYMMDD form (basDd), validated by calendar
//     parsing before any comparison
//   - Numerics: decimal.NullDecimal / *int64, null when the upstream sends an
//     empty value or a lone "-"
//   - Identity: (basDd, market, code) for daily rows, code alone for the
//     ticker master
package model
