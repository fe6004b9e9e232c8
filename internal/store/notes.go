package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateNote inserts a new active note for the owner and returns it.
// Tags are persisted exactly as given; callers derive them from the
// body before the insert.
func (s *Store) CreateNote(owner, body string, tags []string) (*Note, error) {
	n := &Note{
		ID:        newID(),
		Owner:     owner,
		Body:      body,
		Tags:      tags,
		CreatedAt: nowUTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO notes (id, owner, body, tags, archived, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		n.ID, n.Owner, n.Body, joinTags(n.Tags), formatTime(n.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	return n, nil
}

// NoteByID retrieves a single note regardless of archive state.
func (s *Store) NoteByID(id string) (*Note, error) {
	row := s.db.QueryRow(
		`SELECT id, owner, body, tags, archived, created_at FROM notes WHERE id = ?`, id,
	)
	return scanNoteRow(row)
}

// ListNotes returns the owner's notes matching the archive filter,
// ordered by creation time. Ties on created_at break on id so the
// ordering, and therefore the user-visible ordinal, is stable.
func (s *Store) ListNotes(owner string, f NoteFilter) ([]Note, error) {
	query := `SELECT id, owner, body, tags, archived, created_at FROM notes WHERE owner = ?`
	args := []any{owner}

	switch f {
	case FilterActive:
		query += ` AND archived = 0`
	case FilterArchived:
		query += ` AND archived = 1`
	}
	query += ` ORDER BY created_at, id`

	return s.queryNotes(query, args...)
}

// ListNotesByTag returns the owner's active notes whose tag set
// contains tag. Matching is whole-tag, case-insensitive.
func (s *Store) ListNotesByTag(owner, tag string) ([]Note, error) {
	return s.queryNotes(
		`SELECT id, owner, body, tags, archived, created_at
		 FROM notes
		 WHERE owner = ? AND archived = 0 AND instr(tags, ?) > 0
		 ORDER BY created_at, id`,
		owner, " "+tag+" ",
	)
}

// SearchNotes returns the owner's active notes whose body contains
// term as a case-insensitive substring.
func (s *Store) SearchNotes(owner, term string) ([]Note, error) {
	return s.queryNotes(
		`SELECT id, owner, body, tags, archived, created_at
		 FROM notes
		 WHERE owner = ? AND archived = 0 AND lower(body) LIKE '%' || lower(?) || '%' ESCAPE '\'
		 ORDER BY created_at, id`,
		owner, escapeLike(term),
	)
}

// UpdateNoteText overwrites a note's body and tags in a single
// statement, so no partial update is ever observable.
func (s *Store) UpdateNoteText(id, body string, tags []string) error {
	res, err := s.db.Exec(
		`UPDATE notes SET body = ?, tags = ? WHERE id = ?`,
		body, joinTags(tags), id,
	)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	return requireRow(res)
}

// SetNoteArchived flips a note's archive flag.
func (s *Store) SetNoteArchived(id string, archived bool) error {
	res, err := s.db.Exec(`UPDATE notes SET archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return fmt.Errorf("store: archive note: %w", err)
	}
	return requireRow(res)
}

// DeleteNote permanently removes a note. There is no soft delete
// beyond the archive flag.
func (s *Store) DeleteNote(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return requireRow(res)
}

// CountNotes reports the owner's active and archived note counts.
func (s *Store) CountNotes(owner string) (active, archived int, err error) {
	row := s.db.QueryRow(
		`SELECT
			COUNT(CASE WHEN archived = 0 THEN 1 END),
			COUNT(CASE WHEN archived = 1 THEN 1 END)
		 FROM notes WHERE owner = ?`,
		owner,
	)
	if err := row.Scan(&active, &archived); err != nil {
		return 0, 0, fmt.Errorf("store: count notes: %w", err)
	}
	return active, archived, nil
}

// ─── Scanning ────────────────────────────────────────────────────────────────

func (s *Store) queryNotes(query string, args ...any) ([]Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

type rowLike interface {
	Scan(dest ...any) error
}

func scanNote(row rowLike) (*Note, error) {
	var (
		n         Note
		tags      string
		createdAt string
	)
	if err := row.Scan(&n.ID, &n.Owner, &n.Body, &tags, &n.Archived, &createdAt); err != nil {
		return nil, fmt.Errorf("store: scan note: %w", err)
	}
	n.Tags = splitTags(tags)
	n.CreatedAt = parseTime(createdAt)
	return &n, nil
}

func scanNoteRow(row *sql.Row) (*Note, error) {
	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
