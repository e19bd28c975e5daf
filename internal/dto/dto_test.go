package dto

import (
	"encoding/json"
	"testing"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Unmarshal(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","due_date":null}`), &req))

	assert.Equal(t, NewField("New"), req.Title)
	assert.Equal(t, NullField[models.Date](), req.DueDate)
	assert.False(t, req.Status.Set, "absent key must stay unset")
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", `{}`, ""},
		{"status only", `{"status":"done"}`, ""},
		{"clear due date", `{"due_date":null}`, ""},
		{"blank title", `{"title":"  "}`, "title: must be a non-empty string"},
		{"null title", `{"title":null}`, "title: must be a non-empty string"},
		{"null status", `{"status":null}`, "status: must not be null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr string
	}{
		{"valid", CreateUserRequest{Name: "Ann", Email: "ann@example.com"}, ""},
		{"blank name", CreateUserRequest{Name: " ", Email: "ann@example.com"}, "name: is required"},
		{"no email", CreateUserRequest{Name: "Ann"}, "email: is required"},
		{"no at sign", CreateUserRequest{Name: "Ann", Email: "ann.example.com"}, "email: is not a valid email address"},
		{"display name form", CreateUserRequest{Name: "Ann", Email: "Ann <ann@example.com>"}, "email: is not a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateTaskRequest_StatusOrDefault(t *testing.T) {
	req := CreateTaskRequest{Title: "T", UserID: 1}
	assert.Equal(t, models.StatusPending, req.StatusOrDefault())

	req.Status = NewField(models.StatusDone)
	assert.Equal(t, models.StatusDone, req.StatusOrDefault())
}

func TestCreateTaskRequest_RejectsNullStatus(t *testing.T) {
	var req CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T","status":null,"user_id":1}`), &req))

	assert.EqualError(t, req.Validate(), "status: must not be null")
}

func TestDescribeBindError(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"title": 5}`, "title: expected string"},
		{`{"status": "todo"}`, `status: invalid status "todo": must be pending, in_progress or done`},
		{`{"due_date": "tomorrow"}`, `due_date: invalid date "tomorrow": expected YYYY-MM-DD`},
		{`{"title": `, "Invalid request body: malformed JSON"},
	}

	for _, tt := range tests {
		var req CreateTaskRequest
		err := json.Unmarshal([]byte(tt.body), &req)
		require.Error(t, err, tt.body)
		assert.Equal(t, tt.want, DescribeBindError(err), tt.body)
	}
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"": SortNone, "asc": SortAsc, "desc": SortDesc} {
		got, ok := ParseSortOrder(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseSortOrder("up")
	assert.False(t, ok)
}
