package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы фильтров Binance futures exchangeInfo.
const (
	FilterLotSize = "LOT_SIZE"
	FilterPrice   = "PRICE_FILTER"
)

// Filter — один фильтр инструмента. Значения оставляем строками,
// как их отдаёт биржа; в decimal парсим на границе (internal/precision).
type Filter struct {
	Type     string
	StepSize string
	TickSize string
}

type Instrument struct {
	Symbol  string
	Status  string
	Filters []Filter
}

// Fill — исполненная сделка аккаунта из истории. Порядок в выдаче биржи
// хронологическим не считаем.
type Fill struct {
	Price decimal.Decimal
	Time  time.Time
}
