package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/inkpad/internal/migrations"
	"github.com/studiowebux/inkpad/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Manager is the document journal: an append-only log of opens and saves
type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record appends one event
func (m *Manager) Record(path string, action types.JournalAction, bytes int) error {
	_, err := m.db.Exec(
		"INSERT INTO document_events (timestamp, path, action, bytes) VALUES (?, ?, ?, ?)",
		time.Now().Local().Format(timestampLayout),
		path,
		string(action),
		bytes,
	)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// List returns the newest events first. A non-positive limit returns all.
func (m *Manager) List(limit int) ([]types.JournalEntry, error) {
	query := `
		SELECT id, timestamp, path, action, bytes
		FROM document_events
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListForFile returns the events of one path, newest first
func (m *Manager) ListForFile(path string) ([]types.JournalEntry, error) {
	rows, err := m.db.Query(`
		SELECT id, timestamp, path, action, bytes
		FROM document_events
		WHERE path = ?
		ORDER BY id DESC
	`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal for file: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.JournalEntry, error) {
	var entries []types.JournalEntry

	for rows.Next() {
		var (
			entry     types.JournalEntry
			timestamp string
			action    string
		)
		if err := rows.Scan(&entry.ID, &timestamp, &entry.Path, &action, &entry.Bytes); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		parsed, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			// Try RFC3339 format as fallback
			parsed, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsed = time.Time{}
			}
		}
		entry.Timestamp = parsed
		entry.Action = types.JournalAction(action)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM document_events"); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM document_events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get journal count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
