package api

import (
	"context"
	"fmt"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
)

// KOSPI and KOSDAQ live on separate endpoint paths per dataset. Stock
// datasets sit under /sto, index datasets under its sibling /idx; both hang
// off the same /svc/apis base.
const (
	pathStkIsuBaseInfo = "/sto/stk_isu_base_info"
	pathKsqIsuBaseInfo = "/sto/ksq_isu_base_info"

	pathStkByddTrd = "/sto/stk_bydd_trd"
	pathKsqByddTrd = "/sto/ksq_bydd_trd"

	pathKospiIdxDdTrd  = "/idx/kospi_dd_trd"
	pathKosdaqIdxDdTrd = "/idx/kosdaq_dd_trd"
)

// FetchTickerMaster fetches the instrument master list for one market.
func (c *Client) FetchTickerMaster(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error) {
	path, err := pathFor(market, pathStkIsuBaseInfo, pathKsqIsuBaseInfo)
	if err != nil {
		return nil, err
	}
	return c.fetchRecords(ctx, path, basDd)
}

// FetchDailyTrade fetches the daily trade records for one market.
func (c *Client) FetchDailyTrade(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error) {
	path, err := pathFor(market, pathStkByddTrd, pathKsqByddTrd)
	if err != nil {
		return nil, err
	}
	return c.fetchRecords(ctx, path, basDd)
}

// FetchDailyPrice fetches the records backing the daily price dataset. The
// bydd_trd response already carries the OHLC fields, so the same call is
// reused.
func (c *Client) FetchDailyPrice(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error) {
	return c.FetchDailyTrade(ctx, basDd, market)
}

// FetchIndexDailyPrice fetches the daily index prices for one market.
func (c *Client) FetchIndexDailyPrice(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error) {
	path, err := pathFor(market, pathKospiIdxDdTrd, pathKosdaqIdxDdTrd)
	if err != nil {
		return nil, err
	}
	return c.fetchRecords(ctx, path, basDd)
}

func pathFor(market model.Market, kospi, kosdaq string) (string, error) {
	switch market {
	case model.KOSPI:
		return kospi, nil
	case model.KOSDAQ:
		return kosdaq, nil
	default:
		return "", fmt.Errorf("unsupported market: %q", market)
	}
}

// fetchRecords runs the fetch pipeline for one request: raw bytes, charset
// resolution, envelope extraction. No persistence.
func (c *Client) fetchRecords(ctx context.Context, path, basDd string) ([]model.RawRecord, error) {
	start := time.Now()

	raw, err := c.post(ctx, path, basDd)
	if err != nil {
		return nil, err
	}

	text := c.resolver.Decode(raw)

	records, err := extractRecords(text, path, requestBody(basDd))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched krx records",
		"path", path,
		"bas_dd", basDd,
		"records", len(records),
		"duration", time.Since(start),
	)

	return records, nil
}
