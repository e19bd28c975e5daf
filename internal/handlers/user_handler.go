package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	msgUserNotFound = "User not found"
	msgEmailTaken   = "Email already registered"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if msg := bindJSON(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	existing, err := h.userService.GetUserByEmail(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errorJSON(c, fiber.StatusBadRequest, msgEmailTaken)
	}

	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusBadRequest, msgEmailTaken)
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	skip, limit, err := parsePagination(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	users, err := h.userService.ListUsers(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return errorJSON(c, fiber.StatusNotFound, msgUserNotFound)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.UpdateUserRequest
	if msg := bindJSON(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	user, err := h.userService.UpdateUser(c.UserContext(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusBadRequest, msgEmailTaken)
		}
		return err
	}
	if user == nil {
		return errorJSON(c, fiber.StatusNotFound, msgUserNotFound)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	deleted, err := h.userService.DeleteUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errorJSON(c, fiber.StatusNotFound, msgUserNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
