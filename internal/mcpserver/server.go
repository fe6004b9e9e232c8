// Package mcpserver exposes the note store to AI coding tools over
// MCP stdio, so an assistant can read and add the same notes the
// WhatsApp bot manages. Tools are registered the same way as the
// HTTP side: concrete store injected at construction, no globals.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/anota/internal/store"
)

// New creates the MCP server with the note tools registered.
func New(st *store.Store, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"anota",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(
			"Anota is a WhatsApp notes bot. These tools read and write its note "+
				"database directly. Every tool takes an 'owner' — the WhatsApp "+
				"address the notes belong to, e.g. 'whatsapp:+34600111222'.",
		),
	)

	listTool := NewListNotesTool(st)
	s.AddTool(listTool.Definition(), listTool.Handle)

	searchTool := NewSearchNotesTool(st)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	saveTool := NewSaveNoteTool(st)
	s.AddTool(saveTool.Definition(), saveTool.Handle)

	return s
}
