package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrIdempotencyKeyUsed = errors.New("idempotency key already used")
)

// UserNotFoundError is returned when a task references a user that does not exist.
type UserNotFoundError struct {
	UserID uint
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User %d not found", e.UserID)
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err came from a unique index rejecting a write.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
