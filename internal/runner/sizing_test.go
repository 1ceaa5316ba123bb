package runner

import (
	"testing"

	"futures_bot/internal/modules/config"

	"github.com/stretchr/testify/require"
)

func TestCalcSizeByRisk(t *testing.T) {
	cfg := &config.Trading{RiskPct: 1.0, Leverage: 10}

	// риск 1% от 10000 = 100 USDT; стоп-дистанция 50 => 2, шаг 0.001
	qty, err := calcSizeByRisk(cfg, d("10000"), d("27000"), d("26950"), d("0.001"))
	require.NoError(t, err)
	require.True(t, qty.Equal(d("2")), "qty=%s", qty)
}

func TestCalcSizeByRiskRoundsDown(t *testing.T) {
	cfg := &config.Trading{RiskPct: 1.0, Leverage: 10}

	// 100 / 37 = 2.7027... => вниз к шагу 0.01
	qty, err := calcSizeByRisk(cfg, d("10000"), d("27000"), d("26963"), d("0.01"))
	require.NoError(t, err)
	require.True(t, qty.Equal(d("2.7")), "qty=%s", qty)
}

func TestCalcSizeByRiskMarginCap(t *testing.T) {
	// узкий стоп раздувает qty; маржа режет до equity*lev/entry
	cfg := &config.Trading{RiskPct: 1.0, Leverage: 2}

	qty, err := calcSizeByRisk(cfg, d("1000"), d("100"), d("99.99"), d("0.001"))
	require.NoError(t, err)
	// по риску: 10 / 0.01 = 1000; по марже: 1000*2/100 = 20
	require.True(t, qty.Equal(d("20")), "qty=%s", qty)
}

func TestCalcSizeByRiskTooSmall(t *testing.T) {
	cfg := &config.Trading{RiskPct: 0.1, Leverage: 1}

	// 0.01 USDT риска при стопе в 1000 => qty меньше шага
	_, err := calcSizeByRisk(cfg, d("10"), d("27000"), d("26000"), d("0.001"))
	require.Error(t, err)
}

func TestCalcSizeByRiskInvalid(t *testing.T) {
	cfg := &config.Trading{RiskPct: 1.0, Leverage: 5}

	_, err := calcSizeByRisk(cfg, d("0"), d("100"), d("99"), d("0.001"))
	require.Error(t, err)

	_, err = calcSizeByRisk(cfg, d("1000"), d("100"), d("100"), d("0.001"))
	require.Error(t, err)

	_, err = calcSizeByRisk(&config.Trading{RiskPct: 0}, d("1000"), d("100"), d("99"), d("0.001"))
	require.Error(t, err)
}
