package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/dealerhub/dealership-service/internal/api/http"
	"github.com/dealerhub/dealership-service/internal/api/http/handlers"
	"github.com/dealerhub/dealership-service/internal/auth"
	"github.com/dealerhub/dealership-service/internal/config"
	"github.com/dealerhub/dealership-service/internal/media"
	"github.com/dealerhub/dealership-service/internal/observability"
	"github.com/dealerhub/dealership-service/internal/persistence"
	"github.com/dealerhub/dealership-service/internal/repository"
	"github.com/dealerhub/dealership-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)

	uploader := media.NewCloudinaryClient(cfg.Cloudinary)
	listingCache := service.NewListingCache(redis.ClientHandle(), logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, uploader, listingCache, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	uploadMiddleware := media.NewUploadMiddleware(uploader, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: media.MaxFilesPerRequest * media.MaxFileSize,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, uploader),
		Auth:           handlers.NewAuthHandler(authService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		AuthMiddleware: authMiddleware,
		Upload:         uploadMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
