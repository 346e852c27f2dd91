package components

import (
	"zurbo/internal/infra/db"
	"zurbo/internal/infra/payment"
	"zurbo/internal/infra/readstore"
	"zurbo/internal/infra/uow"
	"zurbo/internal/pkg/config"
	"zurbo/internal/usecase/queries"
	"zurbo/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	gatewayModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// ServiceRequest
		fx.Annotate(
			readstore.NewServiceRequestReadStore,
			fx.As(new(queries.ServiceRequestReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork (repositories are reached through Tx)
		uow.NewPostgresUoW,
	),
)

var gatewayModule = fx.Module("persistence/gateway",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *payment.HTTPGateway {
				return payment.NewHTTPGateway(cfg.PaymentGateway)
			},
			fx.As(new(shared.PaymentGateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
