package db

import (
	"context"
	"database/sql"
	"time"

	"space-booking/internal/pkg/config"
	"space-booking/internal/pkg/errs"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var errDatabaseConnection = errs.New("failed to connect to database")

// NewDatabase opens a pgx-backed connection pool and verifies connectivity.
func NewDatabase(cfg config.DBConfig) (*sql.DB, error) {
	pool, err := sql.Open("pgx", cfg.BuildDSN())
	if err != nil {
		return nil, errs.Mark(err, errDatabaseConnection)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, errs.Mark(err, errDatabaseConnection)
	}

	return pool, nil
}
