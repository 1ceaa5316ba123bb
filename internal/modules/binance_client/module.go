package binance_client

import (
	"futures_bot/internal/closeprice"
	"futures_bot/internal/modules/binance_client/service"
	"futures_bot/internal/precision"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("binance_client",
		fx.Provide(
			service.NewClient,
		),

		// Адаптеры: клиент реализует границы ядра
		fx.Provide(
			func(c *service.Client) precision.InstrumentSource {
				return c
			},
			func(c *service.Client) closeprice.FillSource {
				return c
			},
		),
	)
}
