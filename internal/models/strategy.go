package models

import "time"

type Signal struct {
	Symbol    string
	Timeframe string
	Side      Side
	Price     float64
	Reason    string

	// снимок индикаторов (EMA_Short, EMA_Long, RSI) для журнала сделок
	Features map[string]float64
}

type CandleTick struct {
	Symbol    string
	Timeframe string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Time      time.Time // время закрытия свечи
}
