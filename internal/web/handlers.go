// Package web exposes the sync operations over a thin HTTP edge. Handlers
// validate the request shape and delegate; all real behavior lives in the
// syncer and store packages.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/EJPOP/trade-system/internal/model"
	"github.com/EJPOP/trade-system/internal/syncer"
)

var basDdPattern = regexp.MustCompile(`^\d{8}$`)

// SyncService is the slice of the syncer the edge needs.
type SyncService interface {
	SyncTickerMaster(ctx context.Context, basDd, market string) (model.SyncResult, error)
	SyncTickerMasterRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error)
	SyncDailyTrade(ctx context.Context, basDd, market string) (model.SyncResult, error)
	SyncDailyTradeRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error)
	SyncDailyPrice(ctx context.Context, basDd, market string) (model.SyncResult, error)
	SyncDailyPriceRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error)
	SyncIndexDailyPrice(ctx context.Context, basDd, market string) (model.SyncResult, error)
	SyncIndexDailyPriceRange(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error)
}

// Fetcher serves the raw fetch endpoints (decode+parse only, no persistence).
type Fetcher interface {
	FetchTickerMaster(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
	FetchDailyTrade(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
	FetchIndexDailyPrice(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)
}

// TradeReader serves stored daily trade lookups.
type TradeReader interface {
	FindByDateMarket(ctx context.Context, basDd, market string) ([]model.DailyTradeRow, error)
	FindByDateCode(ctx context.Context, basDd, code string) (*model.DailyTradeRow, error)
}

// TickerReader serves stored ticker master lookups.
type TickerReader interface {
	FindByCode(ctx context.Context, code string) (*model.TickerMasterRow, error)
	FindByMarket(ctx context.Context, market string) ([]model.TickerMasterRow, error)
}

// Handler holds the edge's collaborators.
type Handler struct {
	syncs   SyncService
	fetcher Fetcher
	trades  TradeReader
	tickers TickerReader
	logger  *slog.Logger

	// interDayDelay is the pause between range days when a sync-range
	// request omits delayMs.
	interDayDelay time.Duration
}

// NewHandler creates a new Handler. interDayDelay is the default pacing for
// sync-range requests that do not set delayMs.
func NewHandler(syncs SyncService, fetcher Fetcher, trades TradeReader, tickers TickerReader, interDayDelay time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		syncs:         syncs,
		fetcher:       fetcher,
		trades:        trades,
		tickers:       tickers,
		logger:        logger,
		interDayDelay: interDayDelay,
	}
}

// Routes builds the HTTP mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)

	mux.HandleFunc("POST /svc/apis/sto/isu_base_info", h.fetchRecords(h.fetcher.FetchTickerMaster))
	mux.HandleFunc("POST /svc/apis/sto/bydd_trd", h.fetchRecords(h.fetcher.FetchDailyTrade))
	mux.HandleFunc("POST /svc/apis/idx/kospi_dd_trd", h.fetchIndex(model.KOSPI))
	mux.HandleFunc("POST /svc/apis/idx/kosdaq_dd_trd", h.fetchIndex(model.KOSDAQ))

	mux.HandleFunc("POST /svc/apis/sto/ticker/sync", h.sync(h.syncs.SyncTickerMaster))
	mux.HandleFunc("POST /svc/apis/sto/ticker/sync-range", h.syncRange(h.syncs.SyncTickerMasterRange))
	mux.HandleFunc("POST /svc/apis/sto/trade/sync", h.sync(h.syncs.SyncDailyTrade))
	mux.HandleFunc("POST /svc/apis/sto/trade/sync-range", h.syncRange(h.syncs.SyncDailyTradeRange))
	mux.HandleFunc("POST /svc/apis/sto/price/sync", h.sync(h.syncs.SyncDailyPrice))
	mux.HandleFunc("POST /svc/apis/sto/price/sync-range", h.syncRange(h.syncs.SyncDailyPriceRange))
	mux.HandleFunc("POST /svc/apis/idx/sync", h.sync(h.syncs.SyncIndexDailyPrice))
	mux.HandleFunc("POST /svc/apis/idx/sync-range", h.syncRange(h.syncs.SyncIndexDailyPriceRange))

	mux.HandleFunc("GET /svc/apis/sto/trade", h.listTrades)
	mux.HandleFunc("GET /svc/apis/sto/trade/{code}", h.getTrade)
	mux.HandleFunc("GET /svc/apis/sto/ticker", h.listTickers)
	mux.HandleFunc("GET /svc/apis/sto/ticker/{code}", h.getTicker)

	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fetchRequest is the JSON body of the raw fetch endpoints, mirroring the
// upstream request shape.
type fetchRequest struct {
	BasDd string `json:"basDd"`
}

func (h *Handler) fetchRecords(fetch func(ctx context.Context, basDd string, market model.Market) ([]model.RawRecord, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		basDd, ok := h.decodeBasDd(w, r)
		if !ok {
			return
		}
		market, err := parseMarket(r.URL.Query().Get("market"))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		records, err := fetch(r.Context(), basDd, market)
		if err != nil {
			h.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		h.writeJSON(w, http.StatusOK, map[string][]model.RawRecord{"OutBlock_1": records})
	}
}

func (h *Handler) fetchIndex(market model.Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		basDd, ok := h.decodeBasDd(w, r)
		if !ok {
			return
		}

		records, err := h.fetcher.FetchIndexDailyPrice(r.Context(), basDd, market)
		if err != nil {
			h.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		h.writeJSON(w, http.StatusOK, map[string][]model.RawRecord{"OutBlock_1": records})
	}
}

func (h *Handler) sync(op func(ctx context.Context, basDd, market string) (model.SyncResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		basDd := r.URL.Query().Get("basDd")
		if !basDdPattern.MatchString(basDd) {
			h.writeError(w, http.StatusBadRequest, "basDd must be YYYYMMDD")
			return
		}

		result, err := op(r.Context(), basDd, r.URL.Query().Get("market"))
		if err != nil {
			h.writeOpError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, result)
	}
}

func (h *Handler) syncRange(op func(ctx context.Context, from, to, market string, delay time.Duration) (model.RangeSyncResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		delay := h.interDayDelay
		if v := q.Get("delayMs"); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				h.writeError(w, http.StatusBadRequest, "delayMs must be an integer")
				return
			}
			delay = time.Duration(parsed) * time.Millisecond
		}

		result, err := op(r.Context(), q.Get("from"), q.Get("to"), q.Get("market"), delay)
		if err != nil {
			h.writeOpError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, result)
	}
}

func (h *Handler) listTrades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	basDd := q.Get("basDd")
	if !basDdPattern.MatchString(basDd) {
		h.writeError(w, http.StatusBadRequest, "basDd must be YYYYMMDD")
		return
	}
	market, err := parseMarket(q.Get("market"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.trades.FindByDateMarket(r.Context(), basDd, market.String())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) getTrade(w http.ResponseWriter, r *http.Request) {
	basDd := r.URL.Query().Get("basDd")
	if !basDdPattern.MatchString(basDd) {
		h.writeError(w, http.StatusBadRequest, "basDd must be YYYYMMDD")
		return
	}

	row, err := h.trades.FindByDateCode(r.Context(), basDd, r.PathValue("code"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.writeJSON(w, http.StatusOK, row)
}

func (h *Handler) listTickers(w http.ResponseWriter, r *http.Request) {
	market, err := parseMarket(r.URL.Query().Get("market"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.tickers.FindByMarket(r.Context(), market.String())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) getTicker(w http.ResponseWriter, r *http.Request) {
	row, err := h.tickers.FindByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.writeJSON(w, http.StatusOK, row)
}

func (h *Handler) decodeBasDd(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if !basDdPattern.MatchString(req.BasDd) {
		h.writeError(w, http.StatusBadRequest, "basDd must be YYYYMMDD")
		return "", false
	}
	return req.BasDd, true
}

func parseMarket(s string) (model.Market, error) {
	sel, err := model.ParseSelector(s, string(model.KOSPI))
	if err != nil || sel == model.SelectorAll {
		return "", errors.New("market must be KOSPI|KOSDAQ")
	}
	return model.Market(sel), nil
}

func (h *Handler) writeOpError(w http.ResponseWriter, err error) {
	var verr *syncer.ValidationError
	if errors.As(err, &verr) {
		h.writeError(w, http.StatusBadRequest, verr.Msg)
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
