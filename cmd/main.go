package main

//
//  @title           orderpulse API
//  @version         1.0
//  @description     Restaurant order listing and cached order analytics.
//  @termsOfService  https://github.com/guttosm/orderpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/orderpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        restaurants
//  @tag.description Restaurant lookup and listing
//
//  @tag.name        orders
//  @tag.description Paginated order listing
//
//  @tag.name        analytics
//  @tag.description Cached order trends and rankings
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/orderpulse/config"
	_ "github.com/guttosm/orderpulse/docs" // swagger docs
	"github.com/guttosm/orderpulse/internal/app"
	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/guttosm/orderpulse/internal/metrics"
	"github.com/guttosm/orderpulse/internal/seed"
	"github.com/guttosm/orderpulse/internal/storage"
	"github.com/guttosm/orderpulse/internal/stream"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the orderpulse application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API (default).
//   - migrate: Applies the embedded schema migrations.
//   - seed:    Loads restaurants.json and orders.json from --dir.
//   - consume: Imports orders from the configured Kafka topic.
//
// Flags:
//   - --mode:     Execution mode. Default: "api".
//   - --dir:      Directory with the mock JSON files. Defaults to SEED_DIR.
//   - --parallel: Concurrent order batches while seeding (0=auto).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, migrate, seed or consume")
	dir := flag.String("dir", config.AppConfig.Seed.Dir, "Directory with restaurants.json and orders.json")
	parallel := flag.Int("parallel", 0, "How many order batches to insert concurrently (0=auto up to CPU, max 8)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		logger.L().Info().Msg("running migrations")
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := app.Migrate(ctx, db); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations applied")

	case "seed":
		logger.L().Info().Str("dir", *dir).Msg("running seeder")
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		res, err := seed.ProcessDirectory(ctx, *dir, db, *parallel)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("seeding failed")
		}
		logger.L().Info().Int("restaurants", res.Restaurants).Int("orders", res.Orders).Msg("seeding completed successfully")

	case "consume":
		logger.L().Info().Strs("brokers", config.AppConfig.Kafka.Brokers).Str("topic", config.AppConfig.Kafka.Topic).Msg("starting order consumer")
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		// consume mode serves only /metrics on --port
		reg := metrics.NewRegistry()
		metricsServer := startServer(reg.Handler(), *port)

		consumer := stream.NewConsumer(stream.NewReader(config.AppConfig.Kafka), storage.NewRepository(db), reg)
		if err := consumer.Run(runCtx); err != nil {
			logger.L().Error().Err(err).Msg("order consumer failed")
		}
		_ = consumer.Close()

		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
