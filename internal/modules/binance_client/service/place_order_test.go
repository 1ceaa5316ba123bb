package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"futures_bot/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPlaceMarket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/fapi/v1/order", r.URL.Path)

		q := r.URL.Query()
		require.Equal(t, "BTCUSDT", q.Get("symbol"))
		require.Equal(t, "BUY", q.Get("side"))
		require.Equal(t, "MARKET", q.Get("type"))
		require.Equal(t, "0.003", q.Get("quantity"))
		require.Empty(t, q.Get("reduceOnly"))

		_, _ = w.Write([]byte(`{"orderId":123,"symbol":"BTCUSDT","status":"FILLED","avgPrice":"27100.50","executedQty":"0.003"}`))
	}))
	defer srv.Close()

	res, err := testClient(srv).PlaceMarket(
		context.Background(), "BTCUSDT", models.SideBuy, decimal.RequireFromString("0.003"), false)
	require.NoError(t, err)
	require.Equal(t, int64(123), res.OrderID)

	px, ok := res.FillPrice()
	require.True(t, ok)
	require.Equal(t, "27100.5", px.String())
}

func TestPlaceMarketReduceOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("reduceOnly"))
		_, _ = w.Write([]byte(`{"orderId":124,"status":"NEW","avgPrice":"0"}`))
	}))
	defer srv.Close()

	res, err := testClient(srv).PlaceMarket(
		context.Background(), "BTCUSDT", models.SideSell, decimal.RequireFromString("0.003"), true)
	require.NoError(t, err)

	// avgPrice "0" — цены исполнения ещё нет
	_, ok := res.FillPrice()
	require.False(t, ok)
}

func TestPlaceStopMarket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "TAKE_PROFIT_MARKET", q.Get("type"))
		require.Equal(t, "28000.1", q.Get("stopPrice"))
		require.Equal(t, "true", q.Get("closePosition"))
		require.Equal(t, "MARK_PRICE", q.Get("workingType"))
		_, _ = w.Write([]byte(`{"orderId":125,"status":"NEW"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).PlaceStopMarket(
		context.Background(), "BTCUSDT", models.SideSell, decimal.RequireFromString("28000.1"), true)
	require.NoError(t, err)
}

func TestPostOrderBinanceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-2010,"msg":"Order would immediately trigger."}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).PlaceStopMarket(
		context.Background(), "BTCUSDT", models.SideSell, decimal.RequireFromString("1"), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "-2010")
	require.Contains(t, err.Error(), "immediately trigger")
}

func TestUSDTBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/fapi/v2/balance", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-MBX-APIKEY"))
		_, _ = w.Write([]byte(`[
			{"asset":"BNB","balance":"0.1"},
			{"asset":"USDT","balance":"1523.75"}
		]`))
	}))
	defer srv.Close()

	bal, err := testClient(srv).USDTBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1523.75", bal.String())
}
