package trade_store

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("trade_store",
		fx.Provide(
			New,
		),
	)
}
