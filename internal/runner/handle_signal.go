package runner

import (
	"context"
	"fmt"
	"time"

	"futures_bot/internal/models"
	"futures_bot/internal/precision"
	"futures_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// handleSignal — конвейер одного торгового решения:
// лимиты -> шаги символа -> уровни (clamp + тики) -> сайзинг -> ордер.
func (r *Runner) handleSignal(ctx context.Context, sig models.Signal) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "runner.handleSignal")
	defer span.Finish()

	if !sig.Side.Valid() {
		return
	}

	r.mu.Lock()
	if r.halted {
		r.mu.Unlock()
		return
	}
	if max := r.cfg.Trading.MaxOpenPositions; max > 0 && len(r.active) >= max {
		r.mu.Unlock()
		return
	}
	for _, tr := range r.active {
		// одна позиция на символ
		if tr.Symbol == sig.Symbol {
			r.mu.Unlock()
			return
		}
	}
	r.mu.Unlock()

	steps, err := r.prec.Get(ctx, sig.Symbol)
	if err != nil {
		if errors.Is(err, precision.ErrSymbolNotFound) {
			// фатально для этой попытки, ретраить бессмысленно
			logger.Error("runner: %s: %v", sig.Symbol, err)
			r.n.Sendf("❌ [%s] символ не найден в exchangeInfo, ордер не размещён", sig.Symbol)
			return
		}
		logger.Error("runner: precision %s: %v", sig.Symbol, err)
		return
	}

	entry := decimal.NewFromFloat(sig.Price)
	params, err := calcTradeParams(&r.cfg.Trading, sig.Side, entry, steps)
	if err != nil {
		logger.Error("runner: trade params %s: %v", sig.Symbol, err)
		return
	}

	equity, err := r.bnc.USDTBalance(ctx)
	if err != nil {
		logger.Error("runner: balance: %v", err)
		return
	}
	if r.drawdownExceeded(equity) {
		r.n.Sendf("⛔ Просадка превысила лимит — новые входы остановлены до рестарта")
		return
	}

	qty, err := calcSizeByRisk(&r.cfg.Trading, equity, params.Entry, params.SL, steps.Qty)
	if err != nil {
		logger.Error("runner: sizing %s: %v", sig.Symbol, err)
		return
	}

	order, err := r.bnc.PlaceMarket(ctx, sig.Symbol, sig.Side, qty, false)
	if err != nil {
		logger.Error("runner: place order %s: %v", sig.Symbol, err)
		r.n.Sendf("❌ [%s] %s ордер не размещён: %v", sig.Symbol, sig.Side, err)
		return
	}

	openedAt := time.Now()
	trade := &models.Trade{
		ID:       fmt.Sprintf("%s_%s_%d", sig.Symbol, sig.Side, openedAt.UnixMilli()),
		Symbol:   sig.Symbol,
		Side:     sig.Side,
		Entry:    params.Entry,
		Qty:      qty,
		SL:       params.SL,
		TP:       params.TP,
		OpenedAt: openedAt,
		Status:   models.TradeOpen,
		Features: sig.Features,
	}
	// если биржа сразу отдала цену исполнения — она точнее сигнальной
	if px, ok := order.FillPrice(); ok {
		trade.Entry = px
	}

	r.mu.Lock()
	r.active[trade.ID] = trade
	r.mu.Unlock()

	if err := r.store.Journal(ctx, trade); err != nil {
		logger.Error("runner: journal %s: %v", trade.ID, err)
	}

	// защитные ордера на бирже; их отказ не отменяет вход —
	// выходы по свечам всё равно отслеживаем сами
	closeSide := sig.Side.Opposite()
	if _, err := r.bnc.PlaceStopMarket(ctx, sig.Symbol, closeSide, trade.SL, false); err != nil {
		r.n.Sendf("⚠️ [%s] SL на бирже не выставлен: %v", sig.Symbol, err)
	}
	if _, err := r.bnc.PlaceStopMarket(ctx, sig.Symbol, closeSide, trade.TP, true); err != nil {
		r.n.Sendf("⚠️ [%s] TP на бирже не выставлен: %v", sig.Symbol, err)
	}

	r.n.Sendf("✅ [%s] OPEN %-4s @ %s | SL=%s TP=%s qty=%s | %s",
		trade.Symbol, trade.Side,
		trade.Entry.String(), trade.SL.String(), trade.TP.String(), trade.Qty.String(),
		sig.Reason,
	)
}
