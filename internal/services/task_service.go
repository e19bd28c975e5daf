package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// GetTask returns nil without an error when the task does not exist.
// With includeUser the owning user is loaded alongside the task.
func (s *TaskService) GetTask(ctx context.Context, id uint, includeUser bool) (*models.Task, error) {
	query := s.db.WithContext(ctx)
	if includeUser {
		query = query.Preload("User")
	}

	var task models.Task
	if err := query.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) GetTaskByIdempotencyKey(ctx context.Context, key string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task by idempotency key: %w", err)
	}
	return &task, nil
}

// ListTasks applies every filter in f together. Ordering by due date puts
// tasks without one last in both directions.
func (s *TaskService) ListTasks(ctx context.Context, f dto.TaskFilter) ([]models.Task, error) {
	if f.Limit == 0 {
		return []models.Task{}, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Task{})
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		query = query.Where("status = ?", string(*f.Status))
	}

	switch f.OrderBy {
	case dto.SortAsc:
		query = query.Order("due_date IS NULL").Order("due_date ASC")
	case dto.SortDesc:
		query = query.Order("due_date IS NULL").Order("due_date DESC")
	}
	query = query.Order("id ASC")

	tasks := make([]models.Task, 0)
	if err := query.Offset(f.Skip).Limit(f.Limit).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

type statusCount struct {
	Status models.TaskStatus
	Count  int64
}

// GetTasksSummary counts tasks per status, optionally for a single user.
func (s *TaskService) GetTasksSummary(ctx context.Context, userID *uint) (*dto.TaskSummary, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var rows []statusCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to summarize tasks: %w", err)
	}

	summary := &dto.TaskSummary{}
	for _, row := range rows {
		switch row.Status {
		case models.StatusPending:
			summary.Pending = row.Count
		case models.StatusInProgress:
			summary.InProgress = row.Count
		case models.StatusDone:
			summary.Done = row.Count
		default:
			return nil, fmt.Errorf("unexpected task status %q in store", row.Status)
		}
	}
	summary.Total = summary.Pending + summary.InProgress + summary.Done
	return summary, nil
}

// CreateTask inserts a task for an existing user. A non-empty idempotencyKey
// that was already used returns the task created with it, unchanged.
func (s *TaskService) CreateTask(ctx context.Context, req *dto.CreateTaskRequest, idempotencyKey string) (*models.Task, error) {
	if idempotencyKey != "" {
		existing, err := s.GetTaskByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}
	return s.insertTask(ctx, req, idempotencyKey)
}

// insertTask verifies the owner and writes a new row. A unique violation on the
// key means a concurrent request claimed it after the lookup.
func (s *TaskService) insertTask(ctx context.Context, req *dto.CreateTaskRequest, idempotencyKey string) (*models.Task, error) {
	var owners int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", req.UserID).Count(&owners).Error; err != nil {
		return nil, fmt.Errorf("failed to check task owner: %w", err)
	}
	if owners == 0 {
		return nil, &UserNotFoundError{UserID: req.UserID}
	}

	task := models.Task{
		Title:   req.Title,
		Status:  req.StatusOrDefault(),
		DueDate: req.DueDate,
		UserID:  req.UserID,
	}
	if idempotencyKey != "" {
		task.IdempotencyKey = &idempotencyKey
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrIdempotencyKeyUsed
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, &UserNotFoundError{UserID: req.UserID}
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies the fields present in req and stamps updated_at.
// It returns nil without an error when the task does not exist.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.GetTask(ctx, id, false)
	if err != nil || task == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title.Set {
		task.Title = req.Title.Value
		updates["title"] = task.Title
	}
	if req.Status.Set {
		task.Status = req.Status.Value
		updates["status"] = string(task.Status)
	}
	if req.DueDate.Set {
		if req.DueDate.Null {
			task.DueDate = nil
			updates["due_date"] = nil
		} else {
			due := req.DueDate.Value
			task.DueDate = &due
			updates["due_date"] = due
		}
	}
	if len(updates) == 0 {
		return task, nil
	}

	now := time.Now().UTC()
	task.UpdatedAt = &now
	updates["updated_at"] = now

	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask reports false when the task does not exist.
func (s *TaskService) DeleteTask(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
