package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// Field is an optional request field that remembers whether the key was
// present in the body and whether it was an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// NewField returns a Field carrying v, as if the key had been sent.
func NewField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// NullField returns a Field that was sent as null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DescribeBindError turns a body decoding failure into a message that names
// the offending field where one can be identified.
func DescribeBindError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type.String())
	}
	var statusErr *models.InvalidStatusError
	if errors.As(err, &statusErr) {
		return "status: " + statusErr.Error()
	}
	var dateErr *models.InvalidDateError
	if errors.As(err, &dateErr) {
		return "due_date: " + dateErr.Error()
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "Invalid request body: malformed JSON"
	}
	return "Invalid request body: " + err.Error()
}
