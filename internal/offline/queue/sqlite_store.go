package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

func sqliteMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS queue_items (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT NOT NULL UNIQUE,
			entity       TEXT NOT NULL,
			action       TEXT NOT NULL,
			payload      BLOB NOT NULL,
			enqueued_at  INTEGER NOT NULL,
			retries      INTEGER NOT NULL DEFAULT 0,
			synced       INTEGER NOT NULL DEFAULT 0,
			last_attempt INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queue_items_pending ON queue_items(synced, seq)`,
	}
}

// SQLiteStore is the durable Store, surviving process restarts.
type SQLiteStore struct {
	broadcaster
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) the queue database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create queue directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}
	// A single connection serializes every mutation through SQLite's own transactions.
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteMigrations() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate queue database: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Add(ctx context.Context, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	return s.AddWithID(ctx, uuid.NewString(), entity, action, payload, at)
}

func (s *SQLiteStore) AddWithID(ctx context.Context, id string, entity Entity, action Action, payload any, at time.Time) (Item, error) {
	if err := checkID(id); err != nil {
		return Item{}, err
	}
	raw, err := encodePayload(payload)
	if err != nil {
		return Item{}, err
	}
	item := Item{
		ID:         id,
		Entity:     entity,
		Action:     action,
		Payload:    raw,
		EnqueuedAt: at,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO queue_items (id, entity, action, payload, enqueued_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			item.ID, string(item.Entity), string(item.Action), []byte(item.Payload), at.UnixMilli())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrDuplicateID
		}
		return nil
	})
	if errors.Is(err, ErrDuplicateID) {
		return Item{}, err
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to enqueue item: %w", err)
	}
	item.EnqueuedAt = time.UnixMilli(at.UnixMilli())
	return item, nil
}

func (s *SQLiteStore) ListPending(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity, action, payload, enqueued_at, retries, synced, last_attempt
		   FROM queue_items WHERE synced = 0 ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) MarkSynced(ctx context.Context, id string) error {
	return s.execOne(ctx, `UPDATE queue_items SET synced = 1 WHERE id = ?`, id)
}

func (s *SQLiteStore) IncrementRetry(ctx context.Context, id string, attemptAt time.Time) error {
	return s.execOne(ctx, `UPDATE queue_items SET retries = retries + 1, last_attempt = ? WHERE id = ?`, attemptAt.UnixMilli(), id)
}

func (s *SQLiteStore) MarkFailed(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM queue_items WHERE id = ?`, id)
}

func (s *SQLiteStore) ClearSynced(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM queue_items WHERE synced = 1`)
		return err
	})
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM queue_items`)
		return err
	})
}

func (s *SQLiteStore) State(ctx context.Context) (State, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entity, COUNT(*) FROM queue_items WHERE synced = 0 GROUP BY entity`)
	if err != nil {
		return State{}, fmt.Errorf("failed to compute queue state: %w", err)
	}
	defer rows.Close()

	st := State{ByEntity: map[Entity]int{}}
	for rows.Next() {
		var entity string
		var n int
		if err := rows.Scan(&entity, &n); err != nil {
			return State{}, err
		}
		st.ByEntity[Entity(entity)] = n
		st.TotalPending += n
	}
	return st, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) execOne(ctx context.Context, query string, args ...any) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

// withTx runs fn in a transaction and publishes the new state after commit.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if st, err := s.State(ctx); err == nil {
		s.publish(st)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var (
		it          Item
		entity      string
		action      string
		payload     []byte
		enqueuedAt  int64
		synced      int
		lastAttempt sql.NullInt64
	)
	if err := row.Scan(&it.ID, &entity, &action, &payload, &enqueuedAt, &it.Retries, &synced, &lastAttempt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("failed to scan queue item: %w", err)
	}
	it.Entity = Entity(entity)
	it.Action = Action(action)
	it.Payload = payload
	it.EnqueuedAt = time.UnixMilli(enqueuedAt)
	it.Synced = synced != 0
	if lastAttempt.Valid {
		at := time.UnixMilli(lastAttempt.Int64)
		it.LastAttempt = &at
	}
	return it, nil
}
