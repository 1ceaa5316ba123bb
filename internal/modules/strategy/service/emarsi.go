package service

import (
	"fmt"
	"sync"

	"futures_bot/internal/models"
	"futures_bot/internal/modules/config"
)

// EMARSI — сигнальный движок: кросс EMA как фильтр тренда, RSI как триггер.
// BUY = аптренд + перепроданность, SELL = даунтренд + перекупленность.
// Один сигнал на смену стороны.
type EMARSI struct {
	mu sync.Mutex

	cfg *config.Trading

	emaShort map[string]float64
	emaLong  map[string]float64
	rsi      map[string]*rsiState

	samples  map[string]int         // сколько свечей обработано
	lastSide map[string]models.Side // последний сгенерённый сигнал
}

type rsiState struct {
	prev        float64
	avgGain     float64
	avgLoss     float64
	initialized bool
}

func NewEMARSI(cfg *config.Trading) *EMARSI {
	return &EMARSI{
		cfg:      cfg,
		emaShort: map[string]float64{},
		emaLong:  map[string]float64{},
		rsi:      map[string]*rsiState{},
		samples:  map[string]int{},
		lastSide: map[string]models.Side{},
	}
}

// OnCandle прогоняет закрытую свечу через индикаторы.
// ok==false — сигнала нет (прогрев, нет кросса, сторона не сменилась).
func (e *EMARSI) OnCandle(c models.CandleTick) (models.Signal, bool) {
	side, features, ok := e.update(c.Symbol, c.Close)
	if !ok {
		return models.Signal{}, false
	}

	return models.Signal{
		Symbol:    c.Symbol,
		Timeframe: c.Timeframe,
		Side:      side,
		Price:     c.Close,
		Reason:    fmt.Sprintf("EMA/RSI %s @ %.5f", side, c.Close),
		Features:  features,
	}, true
}

func (e *EMARSI) update(symbol string, price float64) (models.Side, map[string]float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// EMA
	kShort := 2.0 / float64(e.cfg.EMAShort+1)
	kLong := 2.0 / float64(e.cfg.EMALong+1)
	e.emaShort[symbol] = e.emaShort[symbol] + kShort*(price-e.emaShort[symbol])
	e.emaLong[symbol] = e.emaLong[symbol] + kLong*(price-e.emaLong[symbol])

	// RSI (Wilder)
	st := e.rsi[symbol]
	if st == nil {
		st = &rsiState{}
		e.rsi[symbol] = st
	}
	if !st.initialized {
		st.prev = price
		st.initialized = true
		return models.SideNone, nil, false
	}

	change := price - st.prev
	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	alpha := 1.0 / float64(e.cfg.RSIPeriod)
	if st.avgGain == 0 && st.avgLoss == 0 {
		st.avgGain, st.avgLoss = gain, loss
	} else {
		st.avgGain = (1-alpha)*st.avgGain + alpha*gain
		st.avgLoss = (1-alpha)*st.avgLoss + alpha*loss
	}
	st.prev = price

	rs := 0.0
	if st.avgLoss != 0 {
		rs = st.avgGain / st.avgLoss
	}
	rsi := 100 - (100 / (1 + rs))

	// прогрев: ждём достаточно точек
	e.samples[symbol]++
	warmup := e.cfg.EMALong
	if e.cfg.RSIPeriod+1 > warmup {
		warmup = e.cfg.RSIPeriod + 1
	}
	if e.samples[symbol] < warmup {
		return models.SideNone, nil, false
	}

	var side models.Side
	if e.emaShort[symbol] > e.emaLong[symbol] && rsi < e.cfg.RSIOversold {
		side = models.SideBuy
	} else if e.emaShort[symbol] < e.emaLong[symbol] && rsi > e.cfg.RSIOverbought {
		side = models.SideSell
	}
	if side == models.SideNone {
		return models.SideNone, nil, false
	}

	// один сигнал на смену стороны
	if side == e.lastSide[symbol] {
		return models.SideNone, nil, false
	}
	e.lastSide[symbol] = side

	features := map[string]float64{
		"EMA_Short": e.emaShort[symbol],
		"EMA_Long":  e.emaLong[symbol],
		"RSI":       rsi,
	}
	return side, features, true
}
