package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/routes"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/catalog"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/configurations"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/deployment"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/orders"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/automation"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/config"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/metrics"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/migrate"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	automationClient, err := automation.NewClient(cfg.Automation, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create automation client", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	configurationsRepo := configurations.NewRepository(dbClient.DB())

	ordersService, err := orders.NewService(ordersRepo, catalogRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	configurationsService, err := configurations.NewService(configurationsRepo, ordersRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create configurations service", err)
		os.Exit(1)
	}

	deploymentService, err := deployment.NewService(ordersService, automationClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create deployment service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			ordersService,
			configurationsService,
			deploymentService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var cleanupErr error
	cleanupErr = multierr.Append(cleanupErr, server.Shutdown(shutdownCtx))
	cleanupErr = multierr.Append(cleanupErr, redisClient.Close())
	cleanupErr = multierr.Append(cleanupErr, dbClient.Close())
	if cleanupErr != nil {
		logg.Error(ctx, "shutdown finished with errors", cleanupErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}
