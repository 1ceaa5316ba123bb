package strategy

import (
	"futures_bot/internal/modules/config"
	"futures_bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) *service.EMARSI {
				return service.NewEMARSI(&cfg.Trading)
			},
		),
	)
}
