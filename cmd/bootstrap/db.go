package bootstrap

import (
	"context"
	"database/sql"

	"space-booking/internal/infra/db"
	"space-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	pool, err := db.NewDatabase(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pool.Close()
		},
	})

	return pool, nil
}
