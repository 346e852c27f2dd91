package components

import (
	"context"

	"zurbo/internal/handler"
	"zurbo/internal/handler/api"
	"zurbo/internal/handler/middleware"
	"zurbo/internal/pkg/config"
	"zurbo/internal/pkg/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUsageHandler,
		api.NewServiceRequestHandler,
		api.NewConfirmationHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewThrottle,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth           *api.AuthHandler
	Usage          *api.UsageHandler
	ServiceRequest *api.ServiceRequestHandler
	Confirmation   *api.ConfirmationHandler
	Admin          *api.AdminHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:           p.Auth,
		Usage:          p.Usage,
		ServiceRequest: p.ServiceRequest,
		Confirmation:   p.Confirmation,
		Admin:          p.Admin,
	}
}

func NewMiddlewares(
	auth *middleware.AuthMiddleware,
	logger *middleware.Logger,
	throttle *middleware.Throttle,
	m *metrics.Metrics,
) handler.Middlewares {
	return handler.Middlewares{
		Auth:     auth,
		Logger:   logger,
		Throttle: throttle,
		Metrics:  m,
	}
}

// NewThrottle ties the idle-limiter janitor to the app lifecycle.
func NewThrottle(lc fx.Lifecycle, cfg config.Config) *middleware.Throttle {
	t := middleware.NewThrottle(cfg.Throttle)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if cfg.Throttle.Enabled {
				t.StartJanitor(ctx)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
	return t
}
