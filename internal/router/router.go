package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soltixdb/tsfunc/internal/config"
	"github.com/soltixdb/tsfunc/internal/handlers"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/middleware"
	"github.com/soltixdb/tsfunc/internal/processing"
	"github.com/soltixdb/tsfunc/internal/services"
	"github.com/soltixdb/tsfunc/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg config.Config) (*handlers.Handler, error) {
	processor := processing.NewProcessorWithConfig(logger, processing.ProcessorConfig{Workers: cfg.Transform.Workers})
	transformService, err := services.NewTransformService(logger, processor, cfg.Transform)
	if err != nil {
		return nil, err
	}

	h := handlers.New(logger, transformService)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Content-Encoding,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	v1 := app.Group("/v1", authMiddleware)
	v1.Post("/transform", h.Transform)
	v1.Get("/functions", h.Functions)

	// 404 handler
	app.Use(h.NotFound)

	return h, nil
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cfg config.Config) (*fiber.App, error) {
	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = utils.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "tsfunc transformer",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	if _, err := Setup(app, logger, cfg); err != nil {
		return nil, err
	}

	return app, nil
}
