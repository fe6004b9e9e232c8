// Package command implements the chat command grammar: classifying a
// normalized inbound message into one command kind, resolving
// user-facing ordinals to record ids, and producing exactly one reply
// string per message.
package command

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/store"
	"github.com/HendryAvila/anota/internal/text"
)

// Kind identifies one command of the grammar.
type Kind string

const (
	KindHelp           Kind = "help"
	KindStats          Kind = "stats"
	KindListNotes      Kind = "list_notes"
	KindListArchived   Kind = "list_archived"
	KindListReminders  Kind = "list_reminders"
	KindListByTag      Kind = "list_by_tag"
	KindSearch         Kind = "search"
	KindEditNote       Kind = "edit_note"
	KindDeleteReminder Kind = "delete_reminder"
	KindDeleteNote     Kind = "delete_note"
	KindArchiveNote    Kind = "archive_note"
	KindUnarchiveNote  Kind = "unarchive_note"
	KindCreateReminder Kind = "create_reminder"
	KindCreateNote     Kind = "create_note"
	KindFallback       Kind = "fallback"
)

// Responder produces a conversational reply for input no command
// matched. A nil Responder disables the feature.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// request carries one inbound message through a handler: the owner
// identity plus both normalized forms of the text.
type request struct {
	owner     string
	folded    string // lower-cased, for matching
	preserved string // original casing, for payload extraction
}

type handlerFunc func(ctx context.Context, req request) (string, error)

// matcher pairs a predicate on the folded text with its handler.
type matcher struct {
	kind   Kind
	match  func(folded string) bool
	handle handlerFunc
}

// Router classifies inbound messages and dispatches to handlers. It
// holds no per-request state; one Router serves all owners.
type Router struct {
	store     *store.Store
	responder Responder
	log       *zap.Logger
	matchers  []matcher
}

// New builds a Router over the given store. responder may be nil, in
// which case unmatched input gets the fixed apology reply.
func New(st *store.Store, responder Responder, log *zap.Logger) *Router {
	r := &Router{store: st, responder: responder, log: log}

	// The grammar, in priority order. First match wins; exact phrases
	// go before prefixes so "notas" never reaches the "nota" matcher,
	// and "borrar recordatorio" is tried before "borrar nota" stops
	// being a candidate for it.
	r.matchers = []matcher{
		{KindHelp, exactly("ayuda", "help", "hola", "menu", "menú"), r.handleHelp},
		{KindStats, exactly("stats", "estadisticas", "estadísticas"), r.handleStats},
		{KindListNotes, exactly("notas", "lista", "mis notas"), r.handleListNotes},
		{KindListArchived, exactly("archivadas"), r.handleListArchived},
		{KindListReminders, exactly("recordatorios"), r.handleListReminders},
		{KindListByTag, prefixed("listar"), r.handleListByTag},
		{KindSearch, prefixed("buscar"), r.handleSearch},
		{KindEditNote, prefixed("editar nota"), r.handleEditNote},
		{KindDeleteReminder, anyPrefixed("borrar recordatorio", "eliminar recordatorio"), r.handleDeleteReminder},
		{KindDeleteNote, anyPrefixed("borrar nota", "eliminar nota"), r.handleDeleteNote},
		{KindArchiveNote, prefixed("archivar nota"), r.handleArchiveNote},
		{KindUnarchiveNote, prefixed("desarchivar nota"), r.handleUnarchiveNote},
		{KindCreateReminder, prefixed("recuerda"), r.handleCreateReminder},
		{KindCreateNote, matchCreateNote, r.handleCreateNote},
		{KindFallback, func(string) bool { return true }, r.handleFallback},
	}
	return r
}

// Handle processes one inbound message and always returns a reply.
// Every handler failure is mapped to user-facing text here; nothing
// propagates to the transport layer.
func (r *Router) Handle(ctx context.Context, owner, raw string) string {
	folded, preserved := text.Normalize(raw)
	if folded == "" {
		return msgFallbackUnavailable
	}

	req := request{owner: owner, folded: folded, preserved: preserved}
	for _, m := range r.matchers {
		if !m.match(folded) {
			continue
		}
		reply, err := m.handle(ctx, req)
		if err != nil {
			r.log.Warn("command failed",
				zap.String("kind", string(m.kind)),
				zap.String("owner", owner),
				zap.Error(err))
			return replyForError(err)
		}
		r.log.Info("command handled",
			zap.String("kind", string(m.kind)),
			zap.String("owner", owner))
		return reply
	}

	// Unreachable: the fallback matcher accepts everything.
	return msgFallbackUnavailable
}

// ─── Predicates ──────────────────────────────────────────────────────────────

func exactly(phrases ...string) func(string) bool {
	return func(folded string) bool {
		for _, p := range phrases {
			if folded == p {
				return true
			}
		}
		return false
	}
}

func prefixed(prefix string) func(string) bool {
	return func(folded string) bool {
		return folded == prefix || strings.HasPrefix(folded, prefix+" ")
	}
}

func anyPrefixed(prefixes ...string) func(string) bool {
	return func(folded string) bool {
		for _, p := range prefixes {
			if folded == p || strings.HasPrefix(folded, p+" ") {
				return true
			}
		}
		return false
	}
}

// matchCreateNote accepts "nota <body>" and "nota: <body>" as well as
// a bare "nota" (which the handler rejects with the empty-body
// message rather than falling through to the AI).
func matchCreateNote(folded string) bool {
	return folded == "nota" ||
		strings.HasPrefix(folded, "nota ") ||
		strings.HasPrefix(folded, "nota:")
}

// ─── Fallback ────────────────────────────────────────────────────────────────

func (r *Router) handleHelp(context.Context, request) (string, error) {
	return helpText, nil
}

func (r *Router) handleFallback(ctx context.Context, req request) (string, error) {
	if r.responder == nil {
		return "", &Error{Kind: ErrFallbackUnavailable}
	}
	reply, err := r.responder.Respond(ctx, req.preserved)
	if err != nil {
		return "", &Error{Kind: ErrFallbackUnavailable, Err: err}
	}
	return reply, nil
}
