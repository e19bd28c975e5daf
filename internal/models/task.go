package models

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TaskStatus is the closed set of states a task can be in.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusDone}

// InvalidStatusError reports a value outside the status enumeration.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q: must be %s", e.Value, statusChoices())
}

// statusChoices renders TaskStatuses as "a, b or c".
func statusChoices() string {
	names := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		names[i] = string(s)
	}
	last := len(names) - 1
	return strings.Join(names[:last], ", ") + " or " + names[last]
}

// ParseTaskStatus converts s to a TaskStatus, rejecting unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	if !slices.Contains(TaskStatuses, TaskStatus(s)) {
		return "", &InvalidStatusError{Value: s}
	}
	return TaskStatus(s), nil
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := unmarshalString(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TaskStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaskStatus", value)
	}
	parsed, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"type:text;not null" json:"title"`
	Status         TaskStatus `gorm:"size:20;not null;index:idx_user_status,priority:2" json:"status"`
	DueDate        *Date      `gorm:"index:idx_due_date" json:"due_date"`
	IdempotencyKey *string    `gorm:"size:255;uniqueIndex" json:"idempotency_key"`
	UserID         uint       `gorm:"not null;index:idx_user_status,priority:1" json:"user_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	User           *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
