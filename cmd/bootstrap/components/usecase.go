package components

import (
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/password"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/commands"
	"zurbo/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	password.NewHasher,
	fx.Annotate(
		func(h *password.Hasher) *password.Hasher { return h },
		fx.As(new(commands.PasswordComparer)),
		fx.As(new(commands.PasswordHasher)),
	),
	usecase.NewRateLimitGuard,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewUserCommands,
		commands.NewServiceRequestCommands,
		commands.NewConfirmationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewServiceRequestQueries,
		queries.NewConfirmationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
