package service

import (
	"testing"

	"futures_bot/internal/models"
	"futures_bot/internal/modules/config"

	"github.com/stretchr/testify/require"
)

func testTrading() *config.Trading {
	return &config.Trading{
		EMAShort:      9,
		EMALong:       21,
		RSIPeriod:     14,
		RSIOverbought: 70,
		RSIOversold:   30,
	}
}

func candle(symbol string, px float64) models.CandleTick {
	return models.CandleTick{Symbol: symbol, Timeframe: "1m", Close: px}
}

func TestEMARSIWarmupNoSignal(t *testing.T) {
	e := NewEMARSI(testTrading())

	// до прогрева (EMALong свечей) сигналов быть не может при любых ценах
	prices := []float64{100, 101, 99, 102, 98, 103, 97, 104, 96, 105,
		95, 106, 94, 107, 93, 108, 92, 109, 91, 110}
	require.Less(t, len(prices), 21)

	for i, px := range prices {
		_, ok := e.OnCandle(candle("BTCUSDT", px))
		require.False(t, ok, "signal on warmup candle %d", i)
	}
}

func TestEMARSINoSignalInSteadyTrend(t *testing.T) {
	// ровный рост: EMA_Short > EMA_Long, но RSI у верхней границы —
	// ни условие BUY (перепроданность), ни SELL (даунтренд) не выполняется
	e := NewEMARSI(testTrading())

	px := 100.0
	for i := 0; i < 200; i++ {
		px += 1.0
		sig, ok := e.OnCandle(candle("ETHUSDT", px))
		require.False(t, ok, "unexpected signal %+v at candle %d", sig, i)
	}
}

func TestEMARSISymbolsIndependent(t *testing.T) {
	e := NewEMARSI(testTrading())

	for i := 0; i < 50; i++ {
		_, _ = e.OnCandle(candle("BTCUSDT", 100+float64(i)))
	}

	// другой символ начинает прогрев с нуля
	_, ok := e.OnCandle(candle("ETHUSDT", 2000))
	require.False(t, ok)
}
