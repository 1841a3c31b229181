// Package journal persists window-registry lifecycle events to a local
// sqlite database so panel behavior can be inspected after the fact.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/registry"
)

const defaultBufferSize = 256

// Options configures a Journal.
type Options struct {
	// Path is the sqlite database file. Required.
	Path string
	// BufferSize caps how many events may queue for the background writer
	// before new ones are dropped. Defaults to 256.
	BufferSize int
}

// Journal records window events through a buffered background writer. It
// implements registry.Observer and never blocks the registry: events that
// arrive while the buffer is full are dropped and counted.
type Journal struct {
	logger zerolog.Logger
	db     *sql.DB

	mu     sync.RWMutex // guards closed
	closed bool

	events    chan registry.Event
	wg        sync.WaitGroup
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// Open opens or creates the journal database at opts.Path, applies pending
// migrations, and starts the background writer.
func Open(ctx context.Context, opts Options) (*Journal, error) {
	logger := logging.FromContext(ctx).With().Str("component", "journal").Logger()

	db, err := newConnection(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	buffer := opts.BufferSize
	if buffer <= 0 {
		buffer = defaultBufferSize
	}

	j := &Journal{
		logger: logger,
		db:     db,
		events: make(chan registry.Event, buffer),
	}
	j.wg.Add(1)
	go j.run()

	logger.Debug().Str("path", opts.Path).Int("buffer", buffer).Msg("journal started")
	return j, nil
}

// WindowEvent implements registry.Observer.
func (j *Journal) WindowEvent(ev registry.Event) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	select {
	case j.events <- ev:
	default:
		j.dropped.Add(1)
	}
}

// run drains the event buffer until Close. Insert failures are logged and
// skipped; the journal is best effort.
func (j *Journal) run() {
	defer j.wg.Done()
	for ev := range j.events {
		if err := j.insert(context.Background(), ev); err != nil {
			j.logger.Warn().Err(err).Str("event", string(ev.Type)).Msg("failed to persist window event")
		}
	}
}

const insertEventSQL = `
INSERT INTO window_events (occurred_at, event_type, window_id, z_order, modal, priority, detail)
VALUES (?, ?, ?, ?, ?, ?, ?)`

func (j *Journal) insert(ctx context.Context, ev registry.Event) error {
	_, err := j.db.ExecContext(ctx, insertEventSQL,
		ev.Time.UnixMilli(),
		string(ev.Type),
		string(ev.WindowID),
		ev.ZOrder,
		ev.Modal,
		ev.Priority,
		ev.Detail,
	)
	return err
}

// Entry is one persisted window event.
type Entry struct {
	ID       int64
	Time     time.Time
	Type     registry.EventType
	WindowID registry.WindowID
	ZOrder   int64
	Modal    bool
	Priority int
	Detail   string
}

const recentEventsSQL = `
SELECT id, occurred_at, event_type, window_id, z_order, modal, priority, detail
FROM window_events
ORDER BY id DESC
LIMIT ?`

// Recent returns the latest events, newest first, up to limit.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := j.db.QueryContext(ctx, recentEventsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.ID, &ms, &e.Type, &e.WindowID, &e.ZOrder, &e.Modal, &e.Priority, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		e.Time = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event rows: %w", err)
	}
	return entries, nil
}

// Count returns the total number of persisted events.
func (j *Journal) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM window_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// Clear deletes all persisted events and returns how many were removed.
// Events still queued for the background writer are not affected.
func (j *Journal) Clear(ctx context.Context) (int64, error) {
	res, err := j.db.ExecContext(ctx, "DELETE FROM window_events")
	if err != nil {
		return 0, fmt.Errorf("failed to clear events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared events: %w", err)
	}
	return n, nil
}

// Dropped returns how many events were discarded because the buffer was full.
func (j *Journal) Dropped() uint64 {
	return j.dropped.Load()
}

// Close stops accepting events, waits for the writer to drain the buffer,
// and closes the database. Safe to call multiple times.
func (j *Journal) Close() error {
	var err error
	j.closeOnce.Do(func() {
		j.mu.Lock()
		j.closed = true
		j.mu.Unlock()

		close(j.events)
		j.wg.Wait()

		if n := j.dropped.Load(); n > 0 {
			j.logger.Warn().Uint64("dropped", n).Msg("journal dropped events under backpressure")
		}
		err = j.db.Close()
	})
	return err
}
