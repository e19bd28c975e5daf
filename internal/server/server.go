package server

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/services"
)

// Options tweaks how the app is assembled.
type Options struct {
	// LimiterStorage backs the rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
	// Sentry installs the Sentry middleware. sentry.Init must have run.
	Sentry bool
	// AccessLog writes one line per request to stdout.
	AccessLog bool
}

// New builds the Fiber app with middleware and every route wired to db.
func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "task-api",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	if opts.Sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	if limit := middleware.RateLimit(cfg, opts.LimiterStorage); limit != nil {
		app.Use(limit)
	}

	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)

	routes.Setup(app,
		handlers.NewHealthHandler(db),
		handlers.NewUserHandler(userService),
		handlers.NewTaskHandler(taskService),
	)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
