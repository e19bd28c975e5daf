package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates an isolated in-memory SQLite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

func createUser(t *testing.T, svc *UserService, name, email string) *models.User {
	t.Helper()

	user, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{Name: name, Email: email})
	require.NoError(t, err)
	return user
}

type taskOption func(*dto.CreateTaskRequest)

func withStatus(s models.TaskStatus) taskOption {
	return func(r *dto.CreateTaskRequest) { r.Status = dto.NewField(s) }
}

func withDueDate(s string) taskOption {
	return func(r *dto.CreateTaskRequest) {
		d, err := models.ParseDate(s)
		if err != nil {
			panic(err)
		}
		r.DueDate = &d
	}
}

func createTask(t *testing.T, svc *TaskService, userID uint, title string, opts ...taskOption) *models.Task {
	t.Helper()

	req := &dto.CreateTaskRequest{Title: title, UserID: userID}
	for _, opt := range opts {
		opt(req)
	}
	task, err := svc.CreateTask(context.Background(), req, "")
	require.NoError(t, err)
	return task
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
