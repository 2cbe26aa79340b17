package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/delivery/http/handler"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Router struct {
	app            *fiber.App
	config         *config.Config
	healthHandler  *handler.HealthHandler
	logHandler     *handler.LogHandler
	apiCallHandler *handler.APICallHandler
}

func NewRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	logHandler *handler.LogHandler,
	apiCallHandler *handler.APICallHandler,
) *Router {
	bodyLimit := fiber.DefaultBodyLimit
	if cfg.Attachment.MaxSize > int64(bodyLimit) {
		// room for the log fields next to a full size attachment
		bodyLimit = int(cfg.Attachment.MaxSize) + fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
		BodyLimit:    bodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &Router{
		app:            app,
		config:         cfg,
		healthHandler:  healthHandler,
		logHandler:     logHandler,
		apiCallHandler: apiCallHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.ListLogs)
			logs.Post("", r.logHandler.CreateLog)
			logs.Get("/:id", r.logHandler.GetLog)
		}

		api.Get("/attachments", r.logHandler.ListReadyAttachments)

		calls := api.Group("/api-calls")
		{
			calls.Get("", r.apiCallHandler.ListAPICalls)
			calls.Get("/:correlationId", r.apiCallHandler.GetAPICall)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
