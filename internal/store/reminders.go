package store

import (
	"fmt"
	"time"
)

// CreateReminder inserts a new undelivered reminder and returns it.
// DueAt must already be validated and in UTC; the store does not
// reject past due times (they simply become due immediately).
func (s *Store) CreateReminder(owner, body string, dueAt time.Time) (*Reminder, error) {
	r := &Reminder{
		ID:        newID(),
		Owner:     owner,
		Body:      body,
		DueAt:     dueAt.UTC(),
		CreatedAt: nowUTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO reminders (id, owner, body, due_at, delivered, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		r.ID, r.Owner, r.Body, formatTime(r.DueAt), formatTime(r.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("store: insert reminder: %w", err)
	}
	return r, nil
}

// ListPendingReminders returns the owner's undelivered reminders in
// creation order, the ordering the user-visible ordinal is based on.
func (s *Store) ListPendingReminders(owner string) ([]Reminder, error) {
	return s.queryReminders(
		`SELECT id, owner, body, due_at, delivered, created_at
		 FROM reminders
		 WHERE owner = ? AND delivered = 0
		 ORDER BY created_at, id`,
		owner,
	)
}

// DueReminders returns every undelivered reminder, across owners,
// whose due time is at or before now. No ordering is guaranteed.
func (s *Store) DueReminders(now time.Time) ([]Reminder, error) {
	return s.queryReminders(
		`SELECT id, owner, body, due_at, delivered, created_at
		 FROM reminders
		 WHERE delivered = 0 AND due_at <= ?`,
		formatTime(now),
	)
}

// MarkDelivered sets a reminder's delivered flag. The flag is one
// way: nothing in the system ever resets it.
func (s *Store) MarkDelivered(id string) error {
	res, err := s.db.Exec(`UPDATE reminders SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: mark delivered: %w", err)
	}
	return requireRow(res)
}

// DeleteReminder permanently removes a reminder.
func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete reminder: %w", err)
	}
	return requireRow(res)
}

// ─── Scanning ────────────────────────────────────────────────────────────────

func (s *Store) queryReminders(query string, args ...any) ([]Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reminders []Reminder
	for rows.Next() {
		var (
			r         Reminder
			dueAt     string
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Owner, &r.Body, &dueAt, &r.Delivered, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan reminder: %w", err)
		}
		r.DueAt = parseTime(dueAt)
		r.CreatedAt = parseTime(createdAt)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
