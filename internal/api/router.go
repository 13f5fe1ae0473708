package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/metrics"
	"github.com/guttosm/orderpulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the knobs the router needs from configuration.
type RouterOptions struct {
	RequestTimeout     time.Duration     // per-request context deadline; <= 0 disables it
	RateLimitPerMinute int               // requests per client IP per minute; <= 0 disables it
	Metrics            *metrics.Registry // optional; /metrics is mounted only when set
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Metrics).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the API routes (/api).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - opts (RouterOptions): timeout, rate limit and metrics settings.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
	)
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	routes := router.Group("/api")
	{
		routes.GET("/restaurants", handler.ListRestaurants)
		routes.GET("/restaurants/:id", handler.GetRestaurant)
		routes.POST("/orders", handler.ListOrders)
		routes.POST("/analytics/restaurant-trends", handler.RestaurantTrends)
		routes.POST("/analytics/top-restaurants", handler.TopRestaurants)
	}

	return router
}
