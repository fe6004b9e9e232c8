package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/anota/internal/store"
	"github.com/HendryAvila/anota/internal/text"
)

func renderNotes(notes []store.Note) string {
	if len(notes) == 0 {
		return "No notes."
	}
	var b strings.Builder
	for i, n := range notes {
		fmt.Fprintf(&b, "%d. %s", i+1, n.Body)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(n.Tags, ", "))
		}
		fmt.Fprintf(&b, " (%s)\n", n.CreatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// ─── notes_list ──────────────────────────────────────────────────────────────

// ListNotesTool handles the notes_list MCP tool.
type ListNotesTool struct {
	store *store.Store
}

// NewListNotesTool creates a ListNotesTool with the given store.
func NewListNotesTool(st *store.Store) *ListNotesTool {
	return &ListNotesTool{store: st}
}

// Definition returns the MCP tool definition for notes_list.
func (t *ListNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("notes_list",
		mcp.WithDescription(
			"List an owner's notes in creation order — the same order and numbering the bot shows on WhatsApp.",
		),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("WhatsApp address the notes belong to"),
		),
		mcp.WithString("filter",
			mcp.Description("Which notes: active (default), archived, or all"),
		),
	)
}

// Handle processes the notes_list tool call.
func (t *ListNotesTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := req.GetString("owner", "")
	if owner == "" {
		return mcp.NewToolResultError("'owner' is required"), nil
	}

	filter := store.FilterActive
	switch req.GetString("filter", "active") {
	case "active":
	case "archived":
		filter = store.FilterArchived
	case "all":
		filter = store.FilterAll
	default:
		return mcp.NewToolResultError("'filter' must be active, archived, or all"), nil
	}

	notes, err := t.store.ListNotes(owner, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
	}
	return mcp.NewToolResultText(renderNotes(notes)), nil
}

// ─── notes_search ────────────────────────────────────────────────────────────

// SearchNotesTool handles the notes_search MCP tool.
type SearchNotesTool struct {
	store *store.Store
}

// NewSearchNotesTool creates a SearchNotesTool with the given store.
func NewSearchNotesTool(st *store.Store) *SearchNotesTool {
	return &SearchNotesTool{store: st}
}

// Definition returns the MCP tool definition for notes_search.
func (t *SearchNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("notes_search",
		mcp.WithDescription(
			"Search an owner's active notes by substring (case-insensitive) or by tag.",
		),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("WhatsApp address the notes belong to"),
		),
		mcp.WithString("term",
			mcp.Description("Substring to search for in note text"),
		),
		mcp.WithString("tag",
			mcp.Description("Tag to filter by (without the #)"),
		),
	)
}

// Handle processes the notes_search tool call.
func (t *SearchNotesTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := req.GetString("owner", "")
	if owner == "" {
		return mcp.NewToolResultError("'owner' is required"), nil
	}
	term := req.GetString("term", "")
	tag := req.GetString("tag", "")

	var (
		notes []store.Note
		err   error
	)
	switch {
	case tag != "":
		notes, err = t.store.ListNotesByTag(owner, strings.ToLower(tag))
	case term != "":
		notes, err = t.store.SearchNotes(owner, term)
	default:
		return mcp.NewToolResultError("one of 'term' or 'tag' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search notes: %v", err)), nil
	}
	return mcp.NewToolResultText(renderNotes(notes)), nil
}

// ─── note_save ───────────────────────────────────────────────────────────────

// SaveNoteTool handles the note_save MCP tool.
type SaveNoteTool struct {
	store *store.Store
}

// NewSaveNoteTool creates a SaveNoteTool with the given store.
func NewSaveNoteTool(st *store.Store) *SaveNoteTool {
	return &SaveNoteTool{store: st}
}

// Definition returns the MCP tool definition for note_save.
func (t *SaveNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("note_save",
		mcp.WithDescription(
			"Save a note for an owner. Hashtags in the body (#word) become tags, exactly as on WhatsApp.",
		),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("WhatsApp address the note belongs to"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Note text; original casing is preserved"),
		),
	)
}

// Handle processes the note_save tool call.
func (t *SaveNoteTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner := req.GetString("owner", "")
	if owner == "" {
		return mcp.NewToolResultError("'owner' is required"), nil
	}
	_, body := text.Normalize(req.GetString("body", ""))
	if body == "" {
		return mcp.NewToolResultError("'body' is required"), nil
	}

	note, err := t.store.CreateNote(owner, body, text.Tags(body))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save note: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note saved (ID: %s)", note.ID)), nil
}
