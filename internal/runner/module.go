package runner

import (
	"context"

	"futures_bot/internal/closeprice"
	"futures_bot/internal/precision"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		// ядро конвейера: кеш шагов и резолвер цены закрытия
		// поверх границ, которые отдаёт binance_client
		fx.Provide(
			precision.NewCache,
			closeprice.NewResolver,
		),
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, r *Runner) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go r.Start(context.Background())
						return nil
					},
					OnStop: func(ctx context.Context) error {
						r.Stop()
						return nil
					},
				})
			},
		),
	)
}
