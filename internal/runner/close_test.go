package runner

import (
	"context"
	"testing"

	"futures_bot/internal/closeprice"
	"futures_bot/internal/models"
	bnc "futures_bot/internal/modules/binance_client/service"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openTrade(side models.Side, tp, sl string) *models.Trade {
	return &models.Trade{
		Side:   side,
		Entry:  d("100"),
		Qty:    d("2"),
		TP:     d(tp),
		SL:     d(sl),
		Status: models.TradeOpen,
	}
}

func TestCrossed(t *testing.T) {
	buy := openTrade(models.SideBuy, "104", "96")
	sell := openTrade(models.SideSell, "96", "104")

	cases := []struct {
		name string
		tr   *models.Trade
		px   string
		want bool
	}{
		{"buy inside range", buy, "100", false},
		{"buy hits tp", buy, "104", true},
		{"buy above tp", buy, "105.5", true},
		{"buy hits sl", buy, "96", true},
		{"buy below sl", buy, "90", true},
		{"sell inside range", sell, "100", false},
		{"sell hits tp", sell, "96", true},
		{"sell below tp", sell, "94", true},
		{"sell hits sl", sell, "104", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, crossed(tc.tr, d(tc.px)))
		})
	}
}

type fakeResolver struct {
	res closeprice.Result
	err error
}

func (f *fakeResolver) Resolve(_ context.Context, _ *models.Trade) (closeprice.Result, error) {
	return f.res, f.err
}

type fakeTicker struct {
	px  decimal.Decimal
	err error
}

func (f *fakeTicker) LastPrice(_ context.Context, _ string) (decimal.Decimal, error) {
	return f.px, f.err
}

func TestCloseFillPrice(t *testing.T) {
	tr := openTrade(models.SideBuy, "104", "96")
	ctx := context.Background()

	t.Run("order fill wins", func(t *testing.T) {
		order := &bnc.OrderResult{AvgPrice: "103.5"}
		px, via := closeFillPrice(ctx, order,
			&fakeResolver{err: closeprice.ErrNotFound}, &fakeTicker{px: d("1")}, tr)
		require.Equal(t, "fill", via)
		require.True(t, px.Equal(d("103.5")))
	})

	t.Run("resolver when no fill price", func(t *testing.T) {
		order := &bnc.OrderResult{AvgPrice: "0"}
		px, via := closeFillPrice(ctx, order,
			&fakeResolver{res: closeprice.Result{Price: d("102"), Resolution: closeprice.ResolvedAfterOpen}},
			&fakeTicker{px: d("1")}, tr)
		require.Equal(t, "after_open", via)
		require.True(t, px.Equal(d("102")))
	})

	t.Run("ticker when history empty", func(t *testing.T) {
		order := &bnc.OrderResult{AvgPrice: "0"}
		px, via := closeFillPrice(ctx, order,
			&fakeResolver{err: closeprice.ErrNotFound}, &fakeTicker{px: d("101.5")}, tr)
		require.Equal(t, "ticker", via)
		require.True(t, px.Equal(d("101.5")))
	})

	t.Run("unknown when everything fails", func(t *testing.T) {
		order := &bnc.OrderResult{AvgPrice: "0"}
		px, via := closeFillPrice(ctx, order,
			&fakeResolver{err: closeprice.ErrNotFound},
			&fakeTicker{err: errors.New("binance: 503")}, tr)
		require.Equal(t, "unknown", via)
		require.True(t, px.IsZero())
	})
}

func TestProfit(t *testing.T) {
	buy := openTrade(models.SideBuy, "104", "96")
	buy.ClosePx = d("103")
	require.True(t, profit(buy).Equal(d("6"))) // (103-100)*2

	sell := openTrade(models.SideSell, "96", "104")
	sell.ClosePx = d("97.5")
	require.True(t, profit(sell).Equal(d("5"))) // (100-97.5)*2

	// цена выхода неизвестна — PnL не считаем
	unknown := openTrade(models.SideBuy, "104", "96")
	require.True(t, profit(unknown).IsZero())
}
