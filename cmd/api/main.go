package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/config"
	httpDelivery "github.com/restaurant-discovery/internal/delivery/http"
	"github.com/restaurant-discovery/internal/delivery/http/handler"
	"github.com/restaurant-discovery/internal/infrastructure/nominatim"
	"github.com/restaurant-discovery/internal/pkg/logger"
	"github.com/restaurant-discovery/internal/repository/cache"
	"github.com/restaurant-discovery/internal/repository/postgres"
	"github.com/restaurant-discovery/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Restaurant Discovery Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	listingRepo := postgres.NewListingRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocodeRepo := nominatim.NewNominatimClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	discoveryUC := usecase.NewDiscoveryUseCase(listingRepo, log)

	geocodeUC := usecase.NewGeocodeUseCase(
		geocodeRepo,
		cacheRepo,
		log,
		cfg.Cache.GeocodeCacheTTL,
	)

	positionUC := usecase.NewPositionUseCase(
		cacheRepo,
		cfg.Geolocation.MaxFixAge,
		log,
	)

	tileUC := usecase.NewTileUseCase(cfg.Tiles, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	restaurantHandler := handler.NewRestaurantHandler(discoveryUC, positionUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)
	positionHandler := handler.NewPositionHandler(positionUC, log)
	tileHandler := handler.NewTileHandler(tileUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		restaurantHandler,
		geocodeHandler,
		positionHandler,
		tileHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
