package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"space-booking/internal/handler/api"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/obs"
	"space-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	metrics *obs.Metrics,
	spaceHandler *api.SpaceHandler,
	reservationHandler *api.ReservationHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger, metrics)
	setupRoutes(engine, metrics, spaceHandler, reservationHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, metrics *obs.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(metrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	metrics *obs.Metrics,
	spaceHandler *api.SpaceHandler,
	reservationHandler *api.ReservationHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Webhooks authenticate via provider signature, not user tokens.
		addRoutes(apiGroup.Group("/webhooks"), []route{
			{Method: http.MethodPost, Path: "/payment", Handler: webhookHandler.HandlePayment},
		})

		spaces := apiGroup.Group("/spaces")
		spaces.Use(authMiddleware.RequireAuth())
		{
			addRoutes(spaces, []route{
				{Method: http.MethodGet, Path: "", Handler: spaceHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: spaceHandler.GetByID},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: spaceHandler.Availability},
				{Method: http.MethodGet, Path: "/:id/quote", Handler: spaceHandler.Quote},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.List},
				{Method: http.MethodGet, Path: "/unit", Handler: reservationHandler.ListByUnit},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetByID},
				{Method: http.MethodGet, Path: "/:id/audit", Handler: reservationHandler.ListAudit},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/retry-payment", Handler: reservationHandler.RetryPayment},
				{Method: http.MethodPost, Path: "/:id/access-code/regenerate", Handler: reservationHandler.RegenerateCode},
				{Method: http.MethodPost, Path: "/:id/access-code/validate", Handler: reservationHandler.ValidateCode},
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
