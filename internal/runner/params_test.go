package runner

import (
	"testing"

	"futures_bot/internal/models"
	"futures_bot/internal/modules/config"
	"futures_bot/internal/precision"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func steps(qty, price string) precision.Steps {
	return precision.Steps{Qty: d(qty), Price: d(price)}
}

func TestCalcTradeParamsBuy(t *testing.T) {
	cfg := &config.Trading{StopPct: 0.5, TakeProfitRR: 3, MinGap: 0.0001}

	p, err := calcTradeParams(cfg, models.SideBuy, d("100"), steps("0.001", "0.1"))
	require.NoError(t, err)

	// стоп 0.5% вниз, TP = entry + 3*дистанция до стопа
	require.True(t, p.SL.Equal(d("99.5")), "sl=%s", p.SL)
	require.True(t, p.TP.Equal(d("101.5")), "tp=%s", p.TP)
	require.True(t, p.Entry.Equal(d("100")))
}

func TestCalcTradeParamsSellMirror(t *testing.T) {
	cfg := &config.Trading{StopPct: 0.5, TakeProfitRR: 3, MinGap: 0.0001}

	p, err := calcTradeParams(cfg, models.SideSell, d("100"), steps("0.001", "0.1"))
	require.NoError(t, err)
	require.True(t, p.SL.Equal(d("100.5")), "sl=%s", p.SL)
	require.True(t, p.TP.Equal(d("98.5")), "tp=%s", p.TP)
}

func TestCalcTradeParamsMinGapDominates(t *testing.T) {
	// узкий стоп: clamp обязан растащить уровни минимум на 4%
	cfg := &config.Trading{StopPct: 0.5, TakeProfitRR: 1, MinGap: 0.04}

	p, err := calcTradeParams(cfg, models.SideBuy, d("100"), steps("0.001", "0.1"))
	require.NoError(t, err)
	require.True(t, p.TP.GreaterThanOrEqual(d("104")), "tp=%s", p.TP)
	require.True(t, p.SL.LessThanOrEqual(d("96")), "sl=%s", p.SL)
}

func TestCalcTradeParamsTickRoundingKeepsGap(t *testing.T) {
	// грубый тик: округление уводит уровни дальше от входа, не ближе
	cfg := &config.Trading{StopPct: 1.0, TakeProfitRR: 2, MinGap: 0.0001}
	entry := d("100.07")

	for _, side := range []models.Side{models.SideBuy, models.SideSell} {
		p, err := calcTradeParams(cfg, side, entry, steps("0.001", "0.5"))
		require.NoError(t, err)

		// кратность тику
		_, remSL := p.SL.QuoRem(d("0.5"), 0)
		_, remTP := p.TP.QuoRem(d("0.5"), 0)
		require.True(t, remSL.IsZero())
		require.True(t, remTP.IsZero())

		if side == models.SideBuy {
			require.True(t, p.SL.LessThan(entry))
			require.True(t, p.TP.GreaterThan(entry))
		} else {
			require.True(t, p.SL.GreaterThan(entry))
			require.True(t, p.TP.LessThan(entry))
		}
	}
}

func TestCalcTradeParamsInvalid(t *testing.T) {
	cfg := &config.Trading{StopPct: 0.5, TakeProfitRR: 3}

	_, err := calcTradeParams(cfg, models.SideNone, d("100"), steps("0.001", "0.1"))
	require.Error(t, err)

	_, err = calcTradeParams(cfg, models.SideBuy, d("0"), steps("0.001", "0.1"))
	require.Error(t, err)

	_, err = calcTradeParams(&config.Trading{StopPct: 0}, models.SideBuy, d("100"), steps("0.001", "0.1"))
	require.Error(t, err)
}

func TestRoundUpToTick(t *testing.T) {
	got, err := roundUpToTick(d("100.01"), d("0.5"))
	require.NoError(t, err)
	require.True(t, got.Equal(d("100.5")))

	// кратное тику не двигаем
	got, err = roundUpToTick(d("100.5"), d("0.5"))
	require.NoError(t, err)
	require.True(t, got.Equal(d("100.5")))
}
