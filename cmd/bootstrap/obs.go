package bootstrap

import (
	"space-booking/internal/obs"

	"go.uber.org/fx"
)

var ObsModule = fx.Module("obs",
	fx.Provide(
		obs.NewMetrics,
	),
)
