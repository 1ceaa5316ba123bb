package closeprice

import (
	"context"
	"fmt"

	"futures_bot/internal/models"
	"futures_bot/pkg/logger"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound — цена закрытия неизвестна. Для вызывающего это не ноль
// и не отмена сделки: нужна своя политика (последняя рыночная цена,
// пропуск бухгалтерии).
var ErrNotFound = errors.New("close price not found")

type Resolution int

const (
	// ResolvedAfterOpen — взят последний филл строго после открытия позиции.
	ResolvedAfterOpen Resolution = iota + 1
	// ResolvedFallback — филлов после открытия нет, взят последний филл вообще.
	// Эвристика без гарантии: цена может быть от другой сделки по тому же символу.
	ResolvedFallback
)

func (r Resolution) String() string {
	switch r {
	case ResolvedAfterOpen:
		return "after_open"
	case ResolvedFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

type Result struct {
	Price      decimal.Decimal
	Resolution Resolution
}

// FillSource — граница истории сделок аккаунта (binance_client).
type FillSource interface {
	AccountTrades(ctx context.Context, symbol string) ([]models.Fill, error)
}

// Resolver восстанавливает реализованную цену выхода, когда биржа
// не сообщила цену исполнения напрямую. Состояния нет, кеша нет:
// история сделок — point-in-time, её всегда читаем заново.
type Resolver struct {
	src FillSource
}

func NewResolver(src FillSource) *Resolver {
	return &Resolver{src: src}
}

// Resolve ищет закрывающий филл по trade.Symbol. Порядок выдачи биржи
// хронологическим не считаем — максимум по времени выбираем сами.
func (r *Resolver) Resolve(ctx context.Context, trade *models.Trade) (Result, error) {
	fills, err := r.src.AccountTrades(ctx, trade.Symbol)
	if err != nil {
		logger.Error("closeprice: account trades %s: %v", trade.Symbol, err)
		return Result{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(fills) == 0 {
		logger.Info("closeprice: %s: empty trade history", trade.Symbol)
		return Result{}, ErrNotFound
	}

	var afterOpen, latest *models.Fill
	for i := range fills {
		f := &fills[i]
		if latest == nil || f.Time.After(latest.Time) {
			latest = f
		}
		if !f.Time.After(trade.OpenedAt) {
			continue
		}
		if afterOpen == nil || f.Time.After(afterOpen.Time) {
			afterOpen = f
		}
	}

	if afterOpen != nil {
		return Result{Price: afterOpen.Price, Resolution: ResolvedAfterOpen}, nil
	}

	logger.Info("closeprice: %s: no fills after %s, falling back to latest fill",
		trade.Symbol, trade.OpenedAt.Format("2006-01-02T15:04:05.000Z07:00"))
	return Result{Price: latest.Price, Resolution: ResolvedFallback}, nil
}
