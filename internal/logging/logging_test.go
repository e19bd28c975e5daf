package logging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestDBHandler_PersistsErrorsOnly(t *testing.T) {
	db := setupTestDB(t)
	h := NewDBHandler(db, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("not persisted")
	logger.Error("store failure",
		"method", "POST",
		"path", "/tasks",
		"error", errors.New("boom").Error(),
		"latency_ms", 12.6,
		"task_id", 7,
	)
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "store failure", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/tasks", entry.Path)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.JSONEq(t, `{"task_id":7}`, string(entry.Extra))
}

func TestDBHandler_TruncatesBoundedColumns(t *testing.T) {
	db := setupTestDB(t)
	h := NewDBHandler(db, time.Hour)

	longPath := "/tasks/" + strings.Repeat("é", 400)
	slog.New(h).Error("request failed",
		"path", longPath,
		"method", "PROPFIND-EXTENDED",
		"request_id", strings.Repeat("r", 100),
	)
	h.Stop()

	var entry models.SystemLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, maxPathLen, utf8.RuneCountInString(entry.Path))
	assert.True(t, strings.HasPrefix(longPath, entry.Path))
	assert.Equal(t, "PROPFIND-E", entry.Method)
	assert.Len(t, entry.RequestID, maxRequestIDLen)
}

func TestDBHandler_StopIsIdempotent(t *testing.T) {
	h := NewDBHandler(setupTestDB(t), time.Hour)
	h.Stop()
	h.Stop()
}

func TestPurgeOlderThan(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().UTC()

	for _, ts := range []time.Time{now.AddDate(0, 0, -40), now.AddDate(0, 0, -31), now.AddDate(0, 0, -1)} {
		require.NoError(t, db.Create(&models.SystemLog{ID: uuid.New(), Timestamp: ts, Level: "ERROR"}).Error)
	}

	deleted, err := PurgeOlderThan(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
	err     error
}

func (r *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= r.level }
func (r *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	r.records = append(r.records, rec)
	return r.err
}
func (r *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(string) slog.Handler      { return r }

func TestFanoutHandler(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError, err: errors.New("sink down")}
	fan := NewFanoutHandler(info, errOnly)
	ctx := context.Background()

	assert.True(t, fan.Enabled(ctx, slog.LevelInfo))
	assert.False(t, fan.Enabled(ctx, slog.LevelDebug))

	require.NoError(t, fan.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)))
	err := fan.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelError, "bad", 0))
	require.Error(t, err)

	assert.Len(t, info.records, 2, "a failing sink must not starve the others")
	assert.Len(t, errOnly.records, 1)
}
