package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"futures_bot/internal/closeprice"
	"futures_bot/internal/models"
	bnc "futures_bot/internal/modules/binance_client/service"
	"futures_bot/internal/modules/config"
	md "futures_bot/internal/modules/marketdata/service"
	stg "futures_bot/internal/modules/strategy/service"
	"futures_bot/internal/modules/trade_store"
	"futures_bot/internal/notify"
	"futures_bot/internal/precision"
	"futures_bot/pkg/logger"

	"github.com/shopspring/decimal"
)

// Runner — цикл принятия решений: свеча -> стратегия -> прецизионный
// конвейер (шаги символа, округление, защитный clamp TP/SL) -> ордер.
// Закрытия: пересечение TP/SL на закрытии свечи, цена выхода через
// closeprice.Resolver, журнал в Postgres.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	bnc      *bnc.Client
	md       *md.Client
	stg      *stg.EMARSI
	prec     *precision.Cache
	resolver *closeprice.Resolver
	store    *trade_store.Store
	n        notify.Notifier

	mu          sync.Mutex
	active      map[string]*models.Trade // trade_id -> трейд
	equityStart decimal.Decimal
	halted      bool // максимальная просадка превышена, входы остановлены
}

func New(
	cfg *config.Config,
	client *bnc.Client,
	market *md.Client,
	engine *stg.EMARSI,
	prec *precision.Cache,
	resolver *closeprice.Resolver,
	store *trade_store.Store,
	n notify.Notifier,
) *Runner {
	return &Runner{
		cfg:      cfg,
		bnc:      client,
		md:       market,
		stg:      engine,
		prec:     prec,
		resolver: resolver,
		store:    store,
		n:        n,
		active:   make(map[string]*models.Trade),
	}
}

func (r *Runner) Start(parent context.Context) {
	r.ctx, r.cancel = context.WithCancel(parent)

	if eq, err := r.bnc.USDTBalance(r.ctx); err == nil {
		r.mu.Lock()
		r.equityStart = eq
		r.mu.Unlock()
		r.n.Sendf("🚀 Бот запущен | символы: %s | баланс: %s USDT",
			strings.Join(r.cfg.Trading.Symbols, ", "), eq.StringFixed(2))
	} else {
		logger.Error("runner: start balance: %v", err)
		r.n.Sendf("🚀 Бот запущен | символы: %s | баланс недоступен: %v",
			strings.Join(r.cfg.Trading.Symbols, ", "), err)
	}

	// сводка журнала прошлой сессии
	if recent, err := r.store.Recent(r.ctx, recentSummaryLimit); err != nil {
		logger.Error("runner: recent trades: %v", err)
	} else if len(recent) > 0 {
		r.n.Send(formatRecent(recent))
	}

	stream := r.md.StreamKlines(r.ctx, r.cfg.Trading.Symbols, r.cfg.Trading.Timeframe)
	for {
		select {
		case <-r.ctx.Done():
			return
		case tick, ok := <-stream:
			if !ok {
				logger.Error("runner: kline stream closed")
				return
			}
			r.onCandle(r.ctx, tick)
		}
	}
}

func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Runner) onCandle(ctx context.Context, tick models.CandleTick) {
	// сначала выходы по уже открытым позициям этого символа
	r.checkExits(ctx, tick)

	sig, ok := r.stg.OnCandle(tick)
	if !ok {
		return
	}
	logger.Info("runner: signal %s %s @ %.5f (%s)", sig.Symbol, sig.Side, sig.Price, sig.Reason)
	r.handleSignal(ctx, sig)
}

const recentSummaryLimit = 5

// formatRecent — сводка последних сделок журнала для нотифайера.
func formatRecent(trades []*models.Trade) string {
	var b strings.Builder
	b.WriteString("📜 Последние сделки:")
	for _, tr := range trades {
		b.WriteString(fmt.Sprintf("\n[%s] %-4s @ %s qty=%s — %s",
			tr.Symbol, tr.Side, tr.Entry.String(), tr.Qty.String(), tr.Status))
	}
	return b.String()
}

// drawdownExceeded проверяет просадку от стартового баланса.
// Сработавший стоп сессии не снимается до рестарта.
func (r *Runner) drawdownExceeded(equity decimal.Decimal) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.halted {
		return true
	}
	if r.equityStart.Sign() <= 0 || r.cfg.Trading.MaxDrawdown <= 0 {
		return false
	}

	dd := decimal.NewFromInt(1).Sub(equity.Div(r.equityStart))
	if dd.GreaterThan(decimal.NewFromFloat(r.cfg.Trading.MaxDrawdown)) {
		r.halted = true
		logger.Error("runner: max drawdown exceeded: %s", dd.StringFixed(4))
		return true
	}
	return false
}
