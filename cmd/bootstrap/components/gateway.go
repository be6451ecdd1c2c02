package components

import (
	"space-booking/internal/infra/devices"
	"space-booking/internal/infra/notify"
	"space-booking/internal/infra/payment"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) commands.Notifier {
			return notify.NewNotifier(cfg.Notify)
		},
		func(cfg config.Config) commands.DeviceGateway {
			return devices.NewGateway(cfg.Devices)
		},
		fx.Annotate(
			payment.NewDeferredGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
