package components

import (
	"space-booking/internal/domain/reservation"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *reservation.Calculator {
		return reservation.NewCalculator(reservation.FeePolicy{
			Percent:       cfg.Fees.Percent,
			FixedFeeCents: cfg.Fees.FixedFeeCents,
		})
	},
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAccessCodeCommands,
		commands.NewReservationCommands,
		commands.NewReconcileCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewSpaceQueries,
	),
)
