package components

import (
	"realty-api/internal/pkg/clock"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewPropertyCommands,
		commands.NewEngagementCommands,
		commands.NewUnlockCommands,
		commands.NewSettingsCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewPropertyQueries,
		queries.NewUnlockQueries,
		queries.NewEngagementQueries,
		queries.NewSettingsQueries,
	),
)
