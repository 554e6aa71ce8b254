package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

// Fetcher is the slice of the KRX API client the syncer depends on.
type Fetcher interface {
	FetchTickerMaster(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
	FetchDailyTrade(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
	FetchDailyPrice(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
	FetchIndexDailyPrice(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
}

// TickerMasterStore persists ticker master rows.
type TickerMasterStore interface {
	UpsertBatch(ctx context.Context, rows []model.TickerMasterRow) (int, error)
}

// DailyTradeStore persists daily trade rows and answers the idempotency check.
type DailyTradeStore interface {
	UpsertBatch(ctx context.Context, rows []model.DailyTradeRow) (int, error)
	CountByDateMarket(ctx context.Context, basDd, market string) (int, error)
}

// DailyPriceStore persists typed daily price rows.
type DailyPriceStore interface {
	UpsertBatch(ctx context.Context, rows []model.DailyPriceRow) (int, error)
}

// IndexPriceStore persists index daily price rows.
type IndexPriceStore interface {
	UpsertBatch(ctx context.Context, rows []model.IndexDailyPriceRow) (int, error)
}

// Config holds orchestration settings.
type Config struct {
	MaxRetries   int           // retries after the first attempt
	RetryBackoff time.Duration // base backoff, doubled per attempt
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   2,
		RetryBackoff: 300 * time.Millisecond,
	}
}

// Syncer drives dataset synchronization against the KRX API and the store.
type Syncer struct {
	cfg    Config
	client Fetcher
	logger *slog.Logger

	tickers TickerMasterStore
	trades  DailyTradeStore
	prices  DailyPriceStore
	indexes IndexPriceStore
}

// New creates a new Syncer.
func New(
	cfg Config,
	client Fetcher,
	tickers TickerMasterStore,
	trades DailyTradeStore,
	prices DailyPriceStore,
	indexes IndexPriceStore,
	logger *slog.Logger,
) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultConfig().RetryBackoff
	}
	return &Syncer{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		tickers: tickers,
		trades:  trades,
		prices:  prices,
		indexes: indexes,
	}
}
