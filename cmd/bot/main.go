package main

import (
	"context"
	"log"

	"futures_bot/internal/modules/binance_client"
	"futures_bot/internal/modules/config"
	"futures_bot/internal/modules/marketdata"
	"futures_bot/internal/modules/postgres"
	"futures_bot/internal/modules/strategy"
	"futures_bot/internal/modules/trade_store"
	"futures_bot/internal/notify"
	"futures_bot/internal/runner"
	"futures_bot/pkg/logger"
	"futures_bot/pkg/tracing"

	"go.uber.org/fx"
)

const serviceName = "futures_bot"

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		binance_client.Module(),
		marketdata.Module(),
		strategy.Module(),
		trade_store.Module(),
		runner.Module(),

		// Notifier: если TELEGRAM_* нет — используем stdout
		fx.Provide(
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
		),

		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config) error {
				if cfg.Jaeger.Host == "" {
					return nil
				}
				_, closeTracer, err := tracing.InitTracer(tracing.Config{
					Host: cfg.Jaeger.Host,
					Port: cfg.Jaeger.Port,
				})
				if err != nil {
					return err
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						closeTracer()
						return nil
					},
				})
				return nil
			},
		),
	)
	app.Run()
}
