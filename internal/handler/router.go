package handler

import (
	"net/http"

	"zurbo/internal/domain/user"
	"zurbo/internal/handler/api"
	"zurbo/internal/handler/middleware"
	"zurbo/internal/pkg/config"
	"zurbo/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth           *api.AuthHandler
	Usage          *api.UsageHandler
	ServiceRequest *api.ServiceRequestHandler
	Confirmation   *api.ConfirmationHandler
	Admin          *api.AdminHandler
}

type Middlewares struct {
	Auth     *middleware.AuthMiddleware
	Logger   *middleware.Logger
	Throttle *middleware.Throttle
	Metrics  *metrics.Metrics
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.HTTPMetrics(mw.Metrics))
	if cfg.Throttle.Enabled && mw.Throttle != nil {
		engine.Use(mw.Throttle.Middleware())
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(mw.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireClient := mw.Auth.RequireRole(user.RoleClient)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		usage := apiGroup.Group("/usage")
		usage.Use(mw.Auth.RequireAuth(), requireClient)
		{
			addRoutes(usage, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Usage.Me},
				{Method: http.MethodGet, Path: "/me/check", Handler: h.Usage.Check},
			})
		}

		requests := apiGroup.Group("/service-requests")
		requests.Use(mw.Auth.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.ServiceRequest.Create, Mw: []gin.HandlerFunc{requireClient}},
				{Method: http.MethodGet, Path: "", Handler: h.ServiceRequest.ListMine, Mw: []gin.HandlerFunc{requireClient}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.ServiceRequest.Get},
				{Method: http.MethodPost, Path: "/:id/withdraw", Handler: h.ServiceRequest.Withdraw, Mw: []gin.HandlerFunc{requireClient}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.ServiceRequest.Complete, Mw: []gin.HandlerFunc{requireClient}},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(mw.Auth.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "/:id/confirmation", Handler: h.Confirmation.Status},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Confirmation.Confirm},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(mw.Auth.RequireAuth(), mw.Auth.RequireRole(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/orders/:id/retry-release", Handler: h.Admin.RetryRelease},
				{Method: http.MethodPost, Path: "/usage/:userId/unblock", Handler: h.Admin.UnblockUsage},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
