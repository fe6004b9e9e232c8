package command

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/HendryAvila/anota/internal/store"
	"github.com/HendryAvila/anota/internal/text"
)

// Payload extractors run over the case-preserved text. The (?i) flag
// keeps the keywords case-insensitive without touching the payload.
var (
	createNotePattern = regexp.MustCompile(`(?i)^nota:? ?(.*)$`)
	tagListPattern    = regexp.MustCompile(`(?i)^listar #([\p{L}\p{N}_]+)$`)
	searchPattern     = regexp.MustCompile(`(?i)^buscar (.+)$`)
	editPattern       = regexp.MustCompile(`(?i)^editar nota (\d+): (.+)$`)
	deleteNotePattern = regexp.MustCompile(`(?i)^(?:borrar|eliminar) nota (\d+)$`)
	archivePattern    = regexp.MustCompile(`(?i)^archivar nota (\d+)$`)
	unarchivePattern  = regexp.MustCompile(`(?i)^desarchivar nota (\d+)$`)
)

func (r *Router) handleCreateNote(_ context.Context, req request) (string, error) {
	m := createNotePattern.FindStringSubmatch(req.preserved)
	if m == nil || m[1] == "" {
		return "", validationErr(msgEmptyNote)
	}
	body := m[1]

	note, err := r.store.CreateNote(req.owner, body, text.Tags(body))
	if err != nil {
		return "", storeErr(err)
	}

	reply := "Nota guardada 📝"
	if len(note.Tags) > 0 {
		reply += fmt.Sprintf(" (etiquetas: %s)", strings.Join(note.Tags, ", "))
	}
	return reply, nil
}

func (r *Router) handleListNotes(_ context.Context, req request) (string, error) {
	notes, err := r.store.ListNotes(req.owner, store.FilterActive)
	if err != nil {
		return "", storeErr(err)
	}
	if len(notes) == 0 {
		return msgNoNotes, nil
	}
	return renderNotes("Tus notas:", notes), nil
}

func (r *Router) handleListArchived(_ context.Context, req request) (string, error) {
	notes, err := r.store.ListNotes(req.owner, store.FilterArchived)
	if err != nil {
		return "", storeErr(err)
	}
	if len(notes) == 0 {
		return msgNoArchived, nil
	}
	return renderNotes("Notas archivadas:", notes), nil
}

func (r *Router) handleListByTag(_ context.Context, req request) (string, error) {
	m := tagListPattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadTagFormat)
	}
	tag := strings.ToLower(m[1])

	notes, err := r.store.ListNotesByTag(req.owner, tag)
	if err != nil {
		return "", storeErr(err)
	}
	if len(notes) == 0 {
		return fmt.Sprintf("No hay notas con #%s.", tag), nil
	}
	return renderNotes(fmt.Sprintf("Notas con #%s:", tag), notes), nil
}

func (r *Router) handleSearch(_ context.Context, req request) (string, error) {
	m := searchPattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgEmptySearch)
	}
	term := m[1]

	notes, err := r.store.SearchNotes(req.owner, term)
	if err != nil {
		return "", storeErr(err)
	}
	if len(notes) == 0 {
		return fmt.Sprintf("No encontré notas con %q.", term), nil
	}
	return renderNotes(fmt.Sprintf("Notas con %q:", term), notes), nil
}

func (r *Router) handleEditNote(_ context.Context, req request) (string, error) {
	m := editPattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadEditFormat)
	}
	ordinal, err := parseOrdinal(m[1])
	if err != nil {
		return "", err
	}
	body := m[2]

	note, err := r.resolveNote(req.owner, store.FilterActive, ordinal)
	if err != nil {
		return "", err
	}
	if err := r.store.UpdateNoteText(note.ID, body, text.Tags(body)); err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Nota %d actualizada ✏️", ordinal), nil
}

func (r *Router) handleDeleteNote(_ context.Context, req request) (string, error) {
	m := deleteNotePattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadDeleteFormat)
	}
	ordinal, err := parseOrdinal(m[1])
	if err != nil {
		return "", err
	}

	note, err := r.resolveNote(req.owner, store.FilterActive, ordinal)
	if err != nil {
		return "", err
	}
	if err := r.store.DeleteNote(note.ID); err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Nota %d eliminada 🗑️", ordinal), nil
}

func (r *Router) handleArchiveNote(_ context.Context, req request) (string, error) {
	m := archivePattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadArchiveFormat)
	}
	ordinal, err := parseOrdinal(m[1])
	if err != nil {
		return "", err
	}

	note, err := r.resolveNote(req.owner, store.FilterActive, ordinal)
	if err != nil {
		return "", err
	}
	if err := r.store.SetNoteArchived(note.ID, true); err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Nota %d archivada 📦", ordinal), nil
}

func (r *Router) handleUnarchiveNote(_ context.Context, req request) (string, error) {
	m := unarchivePattern.FindStringSubmatch(req.preserved)
	if m == nil {
		return "", validationErr(msgBadUnarchive)
	}
	ordinal, err := parseOrdinal(m[1])
	if err != nil {
		return "", err
	}

	// The ordinal refers to the archived-only listing here.
	note, err := r.resolveArchivedNote(req.owner, ordinal)
	if err != nil {
		return "", err
	}
	if err := r.store.SetNoteArchived(note.ID, false); err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Nota %d restaurada 📤", ordinal), nil
}

func (r *Router) handleStats(_ context.Context, req request) (string, error) {
	active, archived, err := r.store.CountNotes(req.owner)
	if err != nil {
		return "", storeErr(err)
	}
	return fmt.Sprintf("Notas activas: %d\nArchivadas: %d\nTotal: %d",
		active, archived, active+archived), nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// parseOrdinal converts an already digits-only capture to an int and
// rejects zero. Negative numbers never reach here (the patterns only
// match digits).
func parseOrdinal(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, validationErr(msgBadOrdinal)
	}
	return n, nil
}
