package runner

import (
	"fmt"

	"futures_bot/internal/models"
	"futures_bot/internal/modules/config"
	"futures_bot/internal/precision"
	"futures_bot/internal/risk"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type TradeParams struct {
	Entry decimal.Decimal
	SL    decimal.Decimal
	TP    decimal.Decimal
}

// calcTradeParams считает уровни выхода:
//  1. сырой SL от StopPct, сырой TP от RR*дистанции до стопа;
//  2. защитный clamp — минимум MinGap от входа, какой бы уровень
//     ни предложила стратегия;
//  3. приведение к тикам в безопасную сторону (дальше от входа),
//     чтобы округление не съело гарантированный зазор.
func calcTradeParams(
	cfg *config.Trading,
	side models.Side,
	entry decimal.Decimal,
	steps precision.Steps,
) (*TradeParams, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("unknown side %q", side)
	}
	if entry.Sign() <= 0 {
		return nil, fmt.Errorf("entry <= 0")
	}

	stopPct := decimal.NewFromFloat(cfg.StopPct / 100.0)
	if stopPct.Sign() <= 0 {
		return nil, fmt.Errorf("stopPct <= 0")
	}
	rr := cfg.TakeProfitRR
	if rr <= 0 {
		rr = 2.0
	}
	rrD := decimal.NewFromFloat(rr)

	var slRaw decimal.Decimal
	if side == models.SideBuy {
		slRaw = entry.Mul(one.Sub(stopPct))
	} else {
		slRaw = entry.Mul(one.Add(stopPct))
	}

	riskDist := entry.Sub(slRaw).Abs()
	var tpRaw decimal.Decimal
	if side == models.SideBuy {
		tpRaw = entry.Add(rrD.Mul(riskDist))
	} else {
		tpRaw = entry.Sub(rrD.Mul(riskDist))
	}

	minGap := decimal.NewFromFloat(cfg.MinGap)
	if minGap.Sign() <= 0 {
		minGap = risk.DefaultMinGap
	}
	tp, sl, err := risk.Clamp(entry, tpRaw, slRaw, side, minGap)
	if err != nil {
		return nil, err
	}

	if side == models.SideBuy {
		sl, err = precision.RoundDown(sl, steps.Price)
		if err == nil {
			tp, err = roundUpToTick(tp, steps.Price)
		}
	} else {
		sl, err = roundUpToTick(sl, steps.Price)
		if err == nil {
			tp, err = precision.RoundDown(tp, steps.Price)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("round to tick: %w", err)
	}

	return &TradeParams{Entry: entry, SL: sl, TP: tp}, nil
}

// roundUpToTick — к кратному тика сверху; кратное не трогаем.
func roundUpToTick(v, tick decimal.Decimal) (decimal.Decimal, error) {
	d, err := precision.RoundDown(v, tick)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.Equal(v) {
		return d, nil
	}
	return d.Add(tick), nil
}
