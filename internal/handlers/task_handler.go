package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	msgTaskNotFound       = "Task not found"
	msgIdempotencyKeyUsed = "Idempotency key already used"
	maxIdempotencyKeyLen  = 255
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Get(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("%s header must be at most %d characters", IdempotencyKeyHeader, maxIdempotencyKeyLen))
	}

	var req dto.CreateTaskRequest
	if msg := bindJSON(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	task, err := h.taskService.CreateTask(c.UserContext(), &req, key)
	if err != nil {
		var missing *services.UserNotFoundError
		switch {
		case errors.As(err, &missing):
			return errorJSON(c, fiber.StatusBadRequest, missing.Error())
		case errors.Is(err, services.ErrIdempotencyKeyUsed):
			return errorJSON(c, fiber.StatusBadRequest, msgIdempotencyKeyUsed)
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	skip, limit, err := parsePagination(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := queryUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	filter := dto.TaskFilter{Skip: skip, Limit: limit, UserID: userID}

	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "status: "+err.Error())
		}
		filter.Status = &status
	}

	order, ok := dto.ParseSortOrder(c.Query("order_by"))
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "order_by: must be asc or desc")
	}
	filter.OrderBy = order

	tasks, err := h.taskService.ListTasks(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) Summary(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.taskService.GetTasksSummary(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.UserContext(), id, true)
	if err != nil {
		return err
	}
	if task == nil {
		return errorJSON(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if msg := bindJSON(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	if task == nil {
		return errorJSON(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	deleted, err := h.taskService.DeleteTask(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errorJSON(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
