package components

import (
	"realty-api/internal/infra/db"
	"realty-api/internal/infra/readstore"
	"realty-api/internal/infra/uow"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
			fx.As(new(queries.PropertySnapshotReadStore)),
		),
		fx.Annotate(
			readstore.NewUnlockReadStore,
			fx.As(new(queries.UnlockReadStore)),
			fx.As(new(queries.UnlockAccessReadStore)),
		),
		fx.Annotate(
			readstore.NewBookmarkReadStore,
			fx.As(new(queries.BookmarkReadStore)),
		),
		fx.Annotate(
			readstore.NewInspectionReadStore,
			fx.As(new(queries.InspectionReadStore)),
		),
		fx.Annotate(
			readstore.NewSettingsReadStore,
			fx.As(new(queries.SettingsReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
