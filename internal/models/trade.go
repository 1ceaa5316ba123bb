package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeStatus string

const (
	TradeOpen   TradeStatus = "OPEN"
	TradeClosed TradeStatus = "CLOSED"
)

// Trade — открытая (или уже закрытая) позиция в реестре активных сделок.
// Цены и количества держим в decimal: биржевые шаги десятичные,
// бинарный float их не представляет точно.
type Trade struct {
	ID     string
	Symbol string
	Side   Side

	Entry    decimal.Decimal
	Qty      decimal.Decimal
	SL       decimal.Decimal
	TP       decimal.Decimal
	OpenedAt time.Time

	Status   TradeStatus
	ClosedAt time.Time
	ClosePx  decimal.Decimal
	CloseVia string // "fill" | "after_open" | "fallback" | "ticker" | "unknown"

	// снимок индикаторов на момент входа — уходит в журнал для ML-дообучения
	Features map[string]float64
}
