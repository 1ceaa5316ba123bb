package runner

import (
	"context"
	"time"

	"futures_bot/internal/closeprice"
	"futures_bot/internal/models"
	bnc "futures_bot/internal/modules/binance_client/service"
	"futures_bot/pkg/logger"

	"github.com/shopspring/decimal"
)

// checkExits закрывает позиции символа, у которых закрытие свечи
// пересекло TP или SL.
func (r *Runner) checkExits(ctx context.Context, tick models.CandleTick) {
	px := decimal.NewFromFloat(tick.Close)

	r.mu.Lock()
	var hits []*models.Trade
	for _, tr := range r.active {
		if tr.Symbol != tick.Symbol || tr.Status != models.TradeOpen {
			continue
		}
		if crossed(tr, px) {
			hits = append(hits, tr)
		}
	}
	r.mu.Unlock()

	for _, tr := range hits {
		r.closeTrade(ctx, tr)
	}
}

func crossed(tr *models.Trade, px decimal.Decimal) bool {
	switch tr.Side {
	case models.SideBuy:
		return px.GreaterThanOrEqual(tr.TP) || px.LessThanOrEqual(tr.SL)
	case models.SideSell:
		return px.LessThanOrEqual(tr.TP) || px.GreaterThanOrEqual(tr.SL)
	}
	return false
}

func (r *Runner) closeTrade(ctx context.Context, tr *models.Trade) {
	order, err := r.bnc.PlaceMarket(ctx, tr.Symbol, tr.Side.Opposite(), tr.Qty, true)
	if err != nil {
		logger.Error("runner: close order %s: %v", tr.ID, err)
		r.n.Sendf("❌ [%s] позиция не закрыта: %v", tr.Symbol, err)
		return
	}

	closePx, via := closeFillPrice(ctx, order, r.resolver, r.bnc, tr)

	r.mu.Lock()
	tr.Status = models.TradeClosed
	tr.ClosedAt = time.Now()
	tr.ClosePx = closePx
	tr.CloseVia = via
	delete(r.active, tr.ID)
	r.mu.Unlock()

	if err := r.store.MarkClosed(ctx, tr); err != nil {
		logger.Error("runner: mark closed %s: %v", tr.ID, err)
	}

	if closePx.IsZero() {
		r.n.Sendf("🔒 [%s] CLOSED %s | цена выхода неизвестна", tr.Symbol, tr.Side)
		return
	}
	r.n.Sendf("🔒 [%s] CLOSED %s @ %s (%s) | PnL=%s USDT",
		tr.Symbol, tr.Side, closePx.String(), via, profit(tr).StringFixed(4))
}

// Границы фоллбеков цены закрытия; в проде — resolver и binance-клиент.
type closeResolver interface {
	Resolve(ctx context.Context, tr *models.Trade) (closeprice.Result, error)
}

type lastPriceSource interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// closeFillPrice выбирает цену выхода по убыванию доверия:
// исполнение ордера -> история сделок -> последняя рыночная цена.
// Если недоступно всё — нулевая цена и via="unknown": это не ноль
// и не отмена, сделку фиксируем без цены.
func closeFillPrice(
	ctx context.Context,
	order *bnc.OrderResult,
	resolver closeResolver,
	ticker lastPriceSource,
	tr *models.Trade,
) (decimal.Decimal, string) {
	if px, ok := order.FillPrice(); ok {
		return px, "fill"
	}

	// биржа цену не сообщила — восстанавливаем по истории сделок
	res, err := resolver.Resolve(ctx, tr)
	if err == nil {
		return res.Price, res.Resolution.String()
	}
	logger.Error("runner: resolve close price %s: %v", tr.ID, err)

	// истории нет — берём последнюю рыночную цену
	px, err := ticker.LastPrice(ctx, tr.Symbol)
	if err == nil {
		return px, "ticker"
	}
	logger.Error("runner: ticker price %s: %v", tr.Symbol, err)

	return decimal.Decimal{}, "unknown"
}

// profit: BUY — close-entry, SELL — entry-close; умножено на количество.
func profit(tr *models.Trade) decimal.Decimal {
	if tr.ClosePx.IsZero() {
		return decimal.Decimal{}
	}
	diff := tr.ClosePx.Sub(tr.Entry)
	if tr.Side == models.SideSell {
		diff = diff.Neg()
	}
	return diff.Mul(tr.Qty)
}
