package components

import (
	"space-booking/internal/handler"
	"space-booking/internal/handler/api"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger {
			return middleware.NewLogger(cfg.Log)
		},
		func(cfg config.Config) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(cfg.Auth)
		},
		api.NewSpaceHandler,
		api.NewReservationHandler,
		api.NewWebhookHandler,
	),
	fx.Invoke(handler.NewRouter),
)
