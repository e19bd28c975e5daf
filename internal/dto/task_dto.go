package dto

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
)

type CreateTaskRequest struct {
	Title   string                   `json:"title"`
	Status  Field[models.TaskStatus] `json:"status"`
	DueDate *models.Date             `json:"due_date"`
	UserID  uint                     `json:"user_id"`
}

func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if r.Status.Null {
		return &ValidationError{Field: "status", Reason: "must not be null"}
	}
	if r.UserID == 0 {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	return nil
}

// StatusOrDefault returns the requested status, or pending when none was given.
func (r *CreateTaskRequest) StatusOrDefault() models.TaskStatus {
	if !r.Status.Set || r.Status.Null {
		return models.StatusPending
	}
	return r.Status.Value
}

// UpdateTaskRequest changes only the keys present in the body.
// due_date may be null to clear it.
type UpdateTaskRequest struct {
	Title   Field[string]            `json:"title"`
	Status  Field[models.TaskStatus] `json:"status"`
	DueDate Field[models.Date]       `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title.Set && (r.Title.Null || strings.TrimSpace(r.Title.Value) == "") {
		return &ValidationError{Field: "title", Reason: "must be a non-empty string"}
	}
	if r.Status.Set && r.Status.Null {
		return &ValidationError{Field: "status", Reason: "must not be null"}
	}
	return nil
}

// TaskFilter narrows ListTasks. Nil pointers mean "no filter".
type TaskFilter struct {
	Skip    int
	Limit   int
	UserID  *uint
	Status  *models.TaskStatus
	OrderBy SortOrder
}

// SortOrder orders tasks by due date. The zero value keeps insertion order.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortNone, SortAsc, SortDesc:
		return SortOrder(s), true
	default:
		return SortNone, false
	}
}

type TaskSummary struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
	Total      int64 `json:"total"`
}
