package handlers

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// bindJSON decodes the request body into out and runs its validation.
// A non-empty message means the request was rejected.
func bindJSON(c *fiber.Ctx, out interface{ Validate() error }) string {
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return "Content-Type must be application/json"
		}
		return dto.DescribeBindError(err)
	}
	if err := out.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *fiber.Ctx) (skip, limit int, err error) {
	skip, err = queryInt(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, &dto.ValidationError{Field: "skip", Reason: "must be zero or greater"}
	}

	limit, err = queryInt(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 0 {
		return 0, 0, &dto.ValidationError{Field: "limit", Reason: "must be zero or greater"}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &dto.ValidationError{Field: key, Reason: "must be an integer"}
	}
	return n, nil
}

// queryUserID returns nil when user_id is absent or 0.
func queryUserID(c *fiber.Ctx) (*uint, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &dto.ValidationError{Field: "user_id", Reason: "must be a non-negative integer"}
	}
	if id == 0 {
		return nil, nil
	}
	userID := uint(id)
	return &userID, nil
}
