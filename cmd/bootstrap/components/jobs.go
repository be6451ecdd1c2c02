package components

import (
	"context"

	"space-booking/internal/jobs"
	"space-booking/internal/obs"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		func(reconcile commands.ReconcileCommands, metrics *obs.Metrics, clk clock.Clock, cfg config.Config) *jobs.Reconciler {
			return jobs.NewReconciler(reconcile, metrics, clk, cfg.Jobs)
		},
	),
	fx.Invoke(startReconciler),
)

func startReconciler(lc fx.Lifecycle, reconciler *jobs.Reconciler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			reconciler.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			reconciler.Stop()
			return nil
		},
	})
}
