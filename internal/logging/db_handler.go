package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dbBatchSize = 50

// Widths of the bounded system_logs columns. One oversized value would fail
// the whole batch insert on Postgres.
const (
	maxRequestIDLen = 64
	maxMethodLen    = 10
	maxPathLen      = 255
)

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	db     *gorm.DB
	attrs  []slog.Attr
	shared *dbBuffer
}

type dbBuffer struct {
	mu       sync.Mutex
	entries  []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewDBHandler(db *gorm.DB, flushEvery time.Duration) *DBHandler {
	h := &DBHandler{
		db: db,
		shared: &dbBuffer{
			entries: make([]models.SystemLog, 0, dbBatchSize),
			ticker:  time.NewTicker(flushEvery),
			done:    make(chan struct{}),
			stopped: make(chan struct{}),
		},
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	defer close(h.shared.stopped)
	for {
		select {
		case <-h.shared.ticker.C:
			h.flush()
		case <-h.shared.done:
			h.flush()
			return
		}
	}
}

func (h *DBHandler) flush() {
	b := h.shared
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.entries
	b.entries = make([]models.SystemLog, 0, dbBatchSize)
	b.mu.Unlock()

	if err := h.db.CreateInBatches(batch, dbBatchSize).Error; err != nil {
		// below ERROR so the record never re-enters this handler
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush loop to exit.
func (h *DBHandler) Stop() {
	h.shared.stopOnce.Do(func() {
		h.shared.ticker.Stop()
		close(h.shared.done)
	})
	<-h.shared.stopped
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time.UTC(),
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = truncate(a.Value.String(), maxRequestIDLen)
		case "method":
			entry.Method = truncate(a.Value.String(), maxMethodLen)
		case "path":
			entry.Path = truncate(a.Value.String(), maxPathLen)
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	b := h.shared
	b.mu.Lock()
	b.entries = append(b.entries, entry)
	needFlush := len(b.entries) >= dbBatchSize
	b.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{db: h.db, attrs: merged, shared: h.shared}
}

// WithGroup is a no-op: system_logs columns are flat.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
