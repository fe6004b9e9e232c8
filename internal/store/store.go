// Package store implements the persistence layer for Anota.
//
// It uses SQLite to hold two owner-partitioned collections: notes and
// reminders. Owners are WhatsApp sender addresses; every query is
// scoped to one owner except the due-reminder sweep, which crosses
// owners by design.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeLayout is fixed-width UTC so that string comparison in SQL
// matches chronological order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// ErrNotFound is returned when a record id resolves to nothing.
var ErrNotFound = errors.New("store: record not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Note is a single saved note. Tags are derived from Body at write
// time and are always lower-cased; Body keeps the user's casing.
type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder is a scheduled one-shot message. Delivered only ever goes
// from false to true.
type Reminder struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Body      string    `json:"body"`
	DueAt     time.Time `json:"due_at"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteFilter selects which archive state a note listing covers.
type NoteFilter int

const (
	FilterActive NoteFilter = iota
	FilterArchived
	FilterAll
)

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".anota")}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed persistence engine.
type Store struct {
	db *sql.DB
}

// New creates a Store with the given configuration. It creates the
// data directory if needed, opens SQLite with WAL mode, and runs
// migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "anota.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id         TEXT    PRIMARY KEY,
			owner      TEXT    NOT NULL,
			body       TEXT    NOT NULL,
			tags       TEXT    NOT NULL DEFAULT '',
			archived   INTEGER NOT NULL DEFAULT 0,
			created_at TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_owner   ON notes(owner, archived, created_at);

		CREATE TABLE IF NOT EXISTS reminders (
			id         TEXT    PRIMARY KEY,
			owner      TEXT    NOT NULL,
			body       TEXT    NOT NULL,
			due_at     TEXT    NOT NULL,
			delivered  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reminders_due   ON reminders(delivered, due_at);
		CREATE INDEX IF NOT EXISTS idx_reminders_owner ON reminders(owner, delivered, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nowUTC() time.Time {
	return time.Now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// joinTags stores the tag set as a single space-separated column.
// The surrounding spaces let membership checks match whole tags only.
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

func splitTags(col string) []string {
	fields := strings.Fields(col)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// escapeLike escapes LIKE wildcards in user-supplied search terms.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func newID() string {
	return uuid.NewString()
}
