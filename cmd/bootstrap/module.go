package bootstrap

import (
	"space-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	ObsModule,
	components.PersistenceModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.JobsModule,
	components.HandlerModule,
)
