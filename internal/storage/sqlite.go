package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anmolrajas/portfolio/internal/errors"
)

// SQLite is a KV backed by a SQLite database. The same database also holds
// the contact outbox.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	const op errors.Op = "storage.OpenSQLite"

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.StorageFailed(op, path, fmt.Errorf("creating database directory: %w", err))
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.StorageFailed(op, path, fmt.Errorf("opening database: %w", err))
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.StorageFailed(op, path, fmt.Errorf("pinging database: %w", err))
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.StorageFailed(op, path, fmt.Errorf("running migrations: %w", err))
	}
	return s, nil
}

// OpenSQLiteMemory creates an in-memory database.
func OpenSQLiteMemory() (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.StorageFailed("storage.OpenSQLiteMemory", ":memory:", err)
	}
	// Each pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.StorageFailed("storage.OpenSQLiteMemory", ":memory:", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contact_outbox (
    id TEXT PRIMARY KEY,
    sender_name TEXT NOT NULL,
    sender_email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    received_at TEXT NOT NULL,
    queued_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outbox_queued ON contact_outbox(queued_at);
`

// Path returns the database path.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.StorageFailed("storage.SQLite.Get", key, err)
	}
	return v, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return errors.StorageFailed("storage.SQLite.Set", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return errors.StorageFailed("storage.SQLite.Delete", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// queuedLayout sorts lexically in time order.
const queuedLayout = "2006-01-02T15:04:05.000000000Z"

// OutboxEntry is a contact submission queued for later delivery.
type OutboxEntry struct {
	ID          string
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	ReceivedAt  string
	QueuedAt    time.Time
}

// Enqueue stores e in the outbox.
func (s *SQLite) Enqueue(e OutboxEntry) error {
	if e.QueuedAt.IsZero() {
		e.QueuedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO contact_outbox (id, sender_name, sender_email, subject, message, received_at, queued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SenderName, e.SenderEmail, e.Subject, e.Message, e.ReceivedAt, e.QueuedAt.UTC().Format(queuedLayout))
	if err != nil {
		return errors.StorageFailed("storage.SQLite.Enqueue", e.ID, err)
	}
	return nil
}

// Outbox returns queued entries, oldest first.
func (s *SQLite) Outbox() ([]OutboxEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, sender_name, sender_email, subject, message, received_at, queued_at
		FROM contact_outbox ORDER BY queued_at, rowid`)
	if err != nil {
		return nil, errors.StorageFailed("storage.SQLite.Outbox", "contact_outbox", err)
	}
	defer rows.Close()

	var out []OutboxEntry
	for rows.Next() {
		var (
			e      OutboxEntry
			queued string
		)
		if err := rows.Scan(&e.ID, &e.SenderName, &e.SenderEmail, &e.Subject,
			&e.Message, &e.ReceivedAt, &queued); err != nil {
			return nil, errors.StorageFailed("storage.SQLite.Outbox", "contact_outbox", err)
		}
		if e.QueuedAt, err = time.Parse(queuedLayout, queued); err != nil {
			return nil, errors.StorageFailed("storage.SQLite.Outbox", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StorageFailed("storage.SQLite.Outbox", "contact_outbox", err)
	}
	return out, nil
}

// Remove deletes an entry from the outbox. Removing an id that is not queued
// is a KindNotFound error.
func (s *SQLite) Remove(id string) error {
	const op errors.Op = "storage.SQLite.Remove"

	res, err := s.db.Exec(`DELETE FROM contact_outbox WHERE id = ?`, id)
	if err != nil {
		return errors.StorageFailed(op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.StorageFailed(op, id, err)
	}
	if n == 0 {
		return errors.NotFound(op, id)
	}
	return nil
}
