package components

import (
	"database/sql"

	"space-booking/internal/infra/readstore"
	"space-booking/internal/infra/repository"
	"space-booking/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork for the write side
		uow.NewSQLUnitOfWork,
		// Pool-backed repositories for the read side (no transaction)
		repository.NewSpaceRepository,
		repository.NewReservationRepository,
		// View stores
		readstore.NewReservationReadStore,
		readstore.NewSpaceReadStore,
	),
)

func NewDBTX(pool *sql.DB) repository.DBTX {
	return pool
}
