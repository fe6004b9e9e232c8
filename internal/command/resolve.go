package command

import (
	"errors"

	"github.com/HendryAvila/anota/internal/store"
)

// Ordinal resolution lists the owner's records at query time and
// indexes into the ordering, so the mapping is only valid for that
// instant. A concurrent mutation between resolution and the write
// that follows can shift positions; that read-then-write race is
// accepted and bounded only by the store's per-owner ordering.

// resolveNote maps a 1-based ordinal in the filtered note listing to
// the note itself.
func (r *Router) resolveNote(owner string, f store.NoteFilter, ordinal int) (*store.Note, error) {
	notes, err := r.store.ListNotes(owner, f)
	if err != nil {
		return nil, storeErr(err)
	}
	if ordinal < 1 || ordinal > len(notes) {
		return nil, notFoundErr(msgNoteNotFound)
	}
	return &notes[ordinal-1], nil
}

// resolveArchivedNote is resolveNote over the archived-only listing
// with its own not-found message.
func (r *Router) resolveArchivedNote(owner string, ordinal int) (*store.Note, error) {
	note, err := r.resolveNote(owner, store.FilterArchived, ordinal)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) && cerr.Kind == ErrNotFound {
			return nil, notFoundErr(msgArchiveNotFound)
		}
		return nil, err
	}
	return note, nil
}

// resolveReminder maps a 1-based ordinal in the pending-reminder
// listing to the reminder itself.
func (r *Router) resolveReminder(owner string, ordinal int) (*store.Reminder, error) {
	reminders, err := r.store.ListPendingReminders(owner)
	if err != nil {
		return nil, storeErr(err)
	}
	if ordinal < 1 || ordinal > len(reminders) {
		return nil, notFoundErr(msgRemNotFound)
	}
	return &reminders[ordinal-1], nil
}
