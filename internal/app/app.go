package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/config"
	"github.com/guttosm/orderpulse/internal/api"
	"github.com/guttosm/orderpulse/internal/cache"
	"github.com/guttosm/orderpulse/internal/metrics"
	"github.com/guttosm/orderpulse/internal/service"
	"github.com/guttosm/orderpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer and the 60s analytics cache.
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes, /metrics and Swagger.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewRepository(db)
	reg := metrics.NewRegistry()

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	size := cfg.Cache.Size
	if size <= 0 {
		size = 1024
	}
	results := cache.New(cache.NewMemoryStore(size, ttl), ttl, cache.WithObserver(metrics.CacheObserver{R: reg}))

	handler := api.NewHandler(
		service.NewAnalyticsService(repo, results),
		service.NewOrderService(repo),
		service.NewRestaurantService(repo),
	)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		Metrics:            reg,
	})

	api.NewHealthHandler(map[string]api.Check{"postgres": db.PingContext}).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
