package precision

import (
	"context"
	"fmt"
	"sync"

	"futures_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrSymbolNotFound = errors.New("symbol not found in exchange info")

// Steps — биржевая гранулярность символа.
type Steps struct {
	Qty   decimal.Decimal // шаг количества (LOT_SIZE.stepSize)
	Price decimal.Decimal // шаг цены (PRICE_FILTER.tickSize)
}

// InstrumentSource — граница биржевых метаданных (binance_client).
type InstrumentSource interface {
	Instruments(ctx context.Context) ([]models.Instrument, error)
}

// Cache тянет exchangeInfo один раз на символ и держит шаги до конца сессии:
// фильтры биржи внутри сессии считаем неизменными.
// Один мьютекс на весь кеш: конкурентный первый доступ к одному символу
// сериализуется, параллельная популяция одного ключа исключена.
type Cache struct {
	src InstrumentSource

	mu    sync.Mutex
	steps map[string]Steps
}

func NewCache(src InstrumentSource) *Cache {
	return &Cache{
		src:   src,
		steps: make(map[string]Steps),
	}
}

// Get возвращает шаги символа. Попадание в кеш — без сетевого вызова.
func (c *Cache) Get(ctx context.Context, symbol string) (Steps, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st, ok := c.steps[symbol]; ok {
		return st, nil
	}

	instruments, err := c.src.Instruments(ctx)
	if err != nil {
		return Steps{}, fmt.Errorf("fetch instruments: %w", err)
	}

	for _, inst := range instruments {
		if inst.Symbol != symbol {
			continue
		}
		st, err := stepsFromFilters(inst)
		if err != nil {
			return Steps{}, err
		}
		c.steps[symbol] = st
		return st, nil
	}

	return Steps{}, errors.Wrap(ErrSymbolNotFound, symbol)
}

func stepsFromFilters(inst models.Instrument) (Steps, error) {
	var st Steps
	for _, f := range inst.Filters {
		switch f.Type {
		case models.FilterLotSize:
			v, err := parsePositive("stepSize", f.StepSize)
			if err != nil {
				return Steps{}, fmt.Errorf("%s: %w", inst.Symbol, err)
			}
			st.Qty = v
		case models.FilterPrice:
			v, err := parsePositive("tickSize", f.TickSize)
			if err != nil {
				return Steps{}, fmt.Errorf("%s: %w", inst.Symbol, err)
			}
			st.Price = v
		}
	}

	if st.Qty.IsZero() || st.Price.IsZero() {
		return Steps{}, errors.Wrapf(ErrSymbolNotFound,
			"%s: no LOT_SIZE/PRICE_FILTER", inst.Symbol)
	}
	return st, nil
}

func parsePositive(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%s empty", name)
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%s parse: %v (%q)", name, err, s)
	}
	return v, nil
}
