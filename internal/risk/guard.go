package risk

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"futures_bot/internal/models"
)

// DefaultMinGap — минимальная дистанция TP/SL от входа, доля цены.
var DefaultMinGap = decimal.New(4, -2) // 0.04

var (
	ErrInvalidSide  = errors.New("side must be BUY or SELL")
	ErrInvalidPrice = errors.New("entry price must be positive")
)

var one = decimal.NewFromInt(1)

// Clamp отодвигает предложенные TP/SL минимум на minGap от цены входа.
// Стратегия может предложить уровни вплотную к entry — на волатильном
// инструменте это мгновенный низкокачественный выход, поэтому границу
// держим здесь, а не доверяем сигнальному слою. Уровни, уже стоящие
// дальше минимума, не трогаем.
//
// BUY:  tp = max(tp, entry*(1+minGap)), sl = min(sl, entry*(1-minGap))
// SELL: tp = min(tp, entry*(1-minGap)), sl = max(sl, entry*(1+minGap))
func Clamp(entry, tp, sl decimal.Decimal, side models.Side, minGap decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if entry.Sign() <= 0 {
		return decimal.Decimal{}, decimal.Decimal{}, errors.Wrapf(ErrInvalidPrice, "entry=%s", entry)
	}

	above := entry.Mul(one.Add(minGap))
	below := entry.Mul(one.Sub(minGap))

	switch side {
	case models.SideBuy:
		return decimal.Max(tp, above), decimal.Min(sl, below), nil
	case models.SideSell:
		return decimal.Min(tp, below), decimal.Max(sl, above), nil
	default:
		return decimal.Decimal{}, decimal.Decimal{}, errors.Wrapf(ErrInvalidSide, "side=%q", side)
	}
}

// ClampDefault — Clamp с дефолтной дистанцией.
func ClampDefault(entry, tp, sl decimal.Decimal, side models.Side) (decimal.Decimal, decimal.Decimal, error) {
	return Clamp(entry, tp, sl, side, DefaultMinGap)
}
