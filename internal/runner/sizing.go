package runner

import (
	"fmt"

	"futures_bot/internal/modules/config"
	"futures_bot/internal/precision"

	"github.com/shopspring/decimal"
)

// calcSizeByRisk считает количество от ДЕНЕЖНОГО риска:
//
//	risk(USDT) = equity * RiskPct/100
//	qty        = risk / |entry - sl|
//
// кэп по марже: qty <= equity * leverage / entry,
// затем вниз к шагу LOT_SIZE — вверх нельзя, ордер отклонят.
func calcSizeByRisk(
	cfg *config.Trading,
	equity decimal.Decimal,
	entry, sl decimal.Decimal,
	qtyStep decimal.Decimal,
) (decimal.Decimal, error) {
	if equity.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("equity <= 0")
	}

	riskFraction := decimal.NewFromFloat(cfg.RiskPct / 100.0)
	if riskFraction.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("riskFraction <= 0")
	}
	riskUSDT := equity.Mul(riskFraction)

	stopDist := entry.Sub(sl).Abs()
	if stopDist.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("zero stop distance")
	}

	qty := riskUSDT.Div(stopDist)

	lev := cfg.Leverage
	if lev <= 0 {
		lev = 1
	}
	maxByMargin := equity.Mul(decimal.NewFromInt(int64(lev))).Div(entry)
	if qty.GreaterThan(maxByMargin) {
		qty = maxByMargin
	}

	qty, err := precision.RoundDown(qty, qtyStep)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if qty.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("qty <= 0 after rounding")
	}
	return qty, nil
}
