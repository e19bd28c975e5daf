package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		got, err := ParseTaskStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, bad := range []string{"", "todo", "DONE", "in progress"} {
		_, err := ParseTaskStatus(bad)
		var statusErr *InvalidStatusError
		require.True(t, errors.As(err, &statusErr), "ParseTaskStatus(%q)", bad)
		assert.Equal(t, bad, statusErr.Value)
	}
}

func TestInvalidStatusError_ListsEveryStatus(t *testing.T) {
	err := &InvalidStatusError{Value: "todo"}
	assert.Equal(t, `invalid status "todo": must be pending, in_progress or done`, err.Error())
}

func TestTaskStatus_UnmarshalJSON(t *testing.T) {
	var s TaskStatus
	require.NoError(t, json.Unmarshal([]byte(`"in_progress"`), &s))
	assert.Equal(t, StatusInProgress, s)

	assert.Error(t, json.Unmarshal([]byte(`"archived"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`3`), &s))
}

func TestTaskStatus_Scan(t *testing.T) {
	var s TaskStatus
	require.NoError(t, s.Scan([]byte("done")))
	assert.Equal(t, StatusDone, s)

	assert.Error(t, s.Scan("bogus"))
	assert.Error(t, s.Scan(42))
}

func TestDate_JSON(t *testing.T) {
	raw, err := json.Marshal(NewDate(2025, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-31"`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-02-03"`), &d))
	assert.Equal(t, "2025-02-03", d.String())

	tests := []string{`"2025-13-01"`, `"31/12/2025"`, `"2025-12-31T10:00:00Z"`, `20251231`}
	for _, in := range tests {
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}

	err = json.Unmarshal([]byte(`"2025-02-30"`), &d)
	var dateErr *InvalidDateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "2025-02-30", dateErr.Value)
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.March, 4, 0, 0, 0, 0, time.FixedZone("X", 3600))))
	assert.Equal(t, "2025-03-04", d.String())

	require.NoError(t, d.Scan("2025-11-15 00:00:00+00:00"))
	assert.Equal(t, "2025-11-15", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-29")))
	assert.Equal(t, "2024-02-29", d.String())

	assert.Error(t, d.Scan("2025"))
	assert.Error(t, d.Scan(12))

	v, err := NewDate(2025, time.January, 9).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-09", v)
}
