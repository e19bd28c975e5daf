package routes

import (
	"github.com/ahmetcoskunkizilkaya/task-api/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
) {
	app.Get("/health", healthHandler.Check)

	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	tasks := app.Group("/tasks")
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	// registered before /:id so "summary" is not parsed as an id
	tasks.Get("/summary", taskHandler.Summary)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
