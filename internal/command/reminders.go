package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dueLayout is the literal date/time form users type, interpreted as
// UTC. No relative dates, no timezones.
const dueLayout = "2006-01-02 15:04"

var (
	reminderPattern  = regexp.MustCompile(`(?i)^recuerda "([^"]+)" (.+)$`)
	remDeletePattern = regexp.MustCompile(`(?i)^(?:borrar|eliminar) recordatorio (\d+)$`)
)

func (r *Router) handleCreateReminder(_ context.Context, req request) (string, error) {
	m := reminderPattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadReminderFormat)
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return "", validationErr(msgBadReminderFormat)
	}

	// The date must parse before anything touches the store.
	dueAt, err := time.ParseInLocation(dueLayout, m[2], time.UTC)
	if err != nil {
		return "", validationErr(msgBadDateTime)
	}

	reminder, err := r.store.CreateReminder(req.owner, body, dueAt)
	if err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Recordatorio guardado ⏰ Te escribo el %s UTC.",
		reminder.DueAt.Format(dueLayout)), nil
}

func (r *Router) handleListReminders(_ context.Context, req request) (string, error) {
	reminders, err := r.store.ListPendingReminders(req.owner)
	if err != nil {
		return "", storeErr(err)
	}
	if len(reminders) == 0 {
		return msgNoReminders, nil
	}
	return renderReminders(reminders), nil
}

func (r *Router) handleDeleteReminder(_ context.Context, req request) (string, error) {
	m := remDeletePattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadRemDelete)
	}
	ordinal, err := parseOrdinal(m[1])
	if err != nil {
		return "", err
	}

	reminder, err := r.resolveReminder(req.owner, ordinal)
	if err != nil {
		return "", err
	}
	if err := r.store.DeleteReminder(reminder.ID); err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Recordatorio %d eliminado 🗑️", ordinal), nil
}
