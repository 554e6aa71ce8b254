package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EJPOP/trade-system/internal/model"
)

func TestFetchDailyTrade(t *testing.T) {
	var gotPath, gotAuth, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("AUTH_KEY")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"OutBlock_1":[{"ISU_CD":"005930","ISU_NM":"삼성전자"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)

	records, err := client.FetchDailyTrade(context.Background(), "20260119", model.KOSPI)
	require.NoError(t, err)

	assert.Equal(t, "/sto/stk_bydd_trd", gotPath)
	assert.Equal(t, "test-key", gotAuth)
	assert.JSONEq(t, `{"basDd":"20260119"}`, gotBody)

	require.Len(t, records, 1)
	assert.Equal(t, "삼성전자", records[0].Get("ISU_NM"))
}

func TestFetchPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"OutBlock_1":[]}`))
	}))
	defer srv.Close()

	// Base URL ends at /svc/apis: stock paths carry /sto, index paths /idx.
	client, err := NewClient(srv.URL+"/svc/apis", "k")
	require.NoError(t, err)

	ctx := context.Background()
	tests := []struct {
		name  string
		fetch func() ([]model.RawRecord, error)
		want  string
	}{
		{"ticker kospi", func() ([]model.RawRecord, error) { return client.FetchTickerMaster(ctx, "20260119", model.KOSPI) }, "/svc/apis/sto/stk_isu_base_info"},
		{"ticker kosdaq", func() ([]model.RawRecord, error) { return client.FetchTickerMaster(ctx, "20260119", model.KOSDAQ) }, "/svc/apis/sto/ksq_isu_base_info"},
		{"trade kosdaq", func() ([]model.RawRecord, error) { return client.FetchDailyTrade(ctx, "20260119", model.KOSDAQ) }, "/svc/apis/sto/ksq_bydd_trd"},
		{"price kospi", func() ([]model.RawRecord, error) { return client.FetchDailyPrice(ctx, "20260119", model.KOSPI) }, "/svc/apis/sto/stk_bydd_trd"},
		{"index kospi", func() ([]model.RawRecord, error) { return client.FetchIndexDailyPrice(ctx, "20260119", model.KOSPI) }, "/svc/apis/idx/kospi_dd_trd"},
		{"index kosdaq", func() ([]model.RawRecord, error) { return client.FetchIndexDailyPrice(ctx, "20260119", model.KOSDAQ) }, "/svc/apis/idx/kosdaq_dd_trd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fetch()
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotPath)
		})
	}
}

func TestFetch_UnsupportedMarket(t *testing.T) {
	client, err := NewClient("http://unused", "k")
	require.NoError(t, err)

	_, err = client.FetchDailyTrade(context.Background(), "20260119", model.Market("NYSE"))
	assert.Error(t, err)
}

func TestFetch_APIError(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
		forbidden bool
	}{
		{http.StatusInternalServerError, true, false},
		{http.StatusBadGateway, true, false},
		{http.StatusTooManyRequests, true, false},
		{http.StatusForbidden, false, true},
		{http.StatusBadRequest, false, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client, err := NewClient(srv.URL, "k")
			require.NoError(t, err)

			_, err = client.FetchDailyTrade(context.Background(), "20260119", model.KOSPI)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.retryable, apiErr.IsRetryable())
			assert.Equal(t, tt.forbidden, apiErr.IsForbidden())
		})
	}
}

func TestFetch_EUCKRResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := append([]byte(`{"OutBlock_1":[{"ISU_NM":"`), eucKRHangul...)
		body = append(body, []byte(`"}]}`)...)
		w.Write(body)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "k")
	require.NoError(t, err)

	records, err := client.FetchDailyTrade(context.Background(), "20260119", model.KOSPI)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "한글", records[0].Get("ISU_NM"))
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	client, err := NewClient("http://example.com", "k",
		WithHTTPClient(hc),
		WithTimeout(5*time.Second),
		WithFallbackCharset("MS949"),
	)
	require.NoError(t, err)
	assert.Same(t, hc, client.httpClient)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)

	_, err = NewClient("http://example.com", "k", WithFallbackCharset("klingon-1"))
	assert.Error(t, err)
}
