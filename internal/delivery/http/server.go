package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/config"
	"github.com/restaurant-discovery/internal/delivery/http/handler"
	"github.com/restaurant-discovery/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	restaurantHandler *handler.RestaurantHandler
	geocodeHandler    *handler.GeocodeHandler
	positionHandler   *handler.PositionHandler
	tileHandler       *handler.TileHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	restaurantHandler *handler.RestaurantHandler,
	geocodeHandler *handler.GeocodeHandler,
	positionHandler *handler.PositionHandler,
	tileHandler *handler.TileHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Restaurant Discovery Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		restaurantHandler: restaurantHandler,
		geocodeHandler:    geocodeHandler,
		positionHandler:   positionHandler,
		tileHandler:       tileHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Restaurant routes
	api.Get("/restaurants", s.restaurantHandler.List)
	api.Get("/restaurants/:id", s.restaurantHandler.GetByID)
	api.Patch("/restaurants/:id/coordinates", s.restaurantHandler.UpdateCoordinates)

	// Filter dictionaries
	api.Get("/districts", s.restaurantHandler.Districts)
	api.Get("/categories", s.restaurantHandler.Categories)

	// Geocoding
	api.Post("/geocode", s.geocodeHandler.Resolve)

	// Session position routes
	api.Put("/sessions/:id/position", s.positionHandler.Save)
	api.Get("/sessions/:id/position", s.positionHandler.Get)
	api.Delete("/sessions/:id/position", s.positionHandler.Clear)
	api.Post("/sessions/:id/position/failure", s.positionHandler.RecordFailure)

	// Tile layer config and coverage
	api.Get("/config/tiles", s.tileHandler.GetConfig)
	api.Post("/tiles/coverage", s.tileHandler.GetCoverage)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
