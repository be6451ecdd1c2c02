package bootstrap

import (
	"space-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		func(cfg *config.Config) config.Config { return *cfg },
	),
)
