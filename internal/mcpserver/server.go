// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the note workspace to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/chat"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notestore"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp   *server.MCPServer
	store *notestore.Store
	chat  *chat.Service
}

// New creates a new MCP server with all Ansuz tools registered.
func New(store *notestore.Store, chatSvc *chat.Service) *Server {
	s := &Server{store: store, chat: chatSvc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in sidebar order (pinned first, then most recently updated), "+
			"optionally filtered by a title substring and a tag."),
		mcp.WithString("query", mcp.Description("Case-insensitive title substring filter")),
		mcp.WithString("tag", mcp.Description("Only notes carrying this tag")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note including its tags, color, pin state, and chat transcript."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note. Title and content are optional; the note starts "+
			"with defaults and becomes the active note."),
		mcp.WithString("title", mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Serialized document content (opaque to the store)")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Overwrite the title, content, or color of an existing note. "+
			"Omitted fields are left untouched."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New serialized content")),
		mcp.WithString("color", mcp.Description("New color token, e.g. #fef3c7")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note and its chat transcript."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("add_tag",
		mcp.WithDescription("Add a tag to a note. Adding a tag the note already carries is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag label")),
	), s.addTag)

	s.mcp.AddTool(mcp.NewTool("pin_note",
		mcp.WithDescription("Pin or unpin a note. Pinned notes sort before everything else."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithBoolean("pinned", mcp.Required(), mcp.Description("true to pin, false to unpin")),
	), s.pinNote)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List the distinct tags across all notes."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("ask_assistant",
		mcp.WithDescription("Submit a message to a note's assistant panel and return the reply. "+
			"Both turns are appended to the note's transcript."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("Message text")),
	), s.askAssistant)

	// Resource: workspace usage guide.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://workspace-guide", "Workspace Guide",
			mcp.WithResourceDescription("How notes, tags, colors, pinning, and the assistant panel fit together."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readWorkspaceGuide,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	var selected []string
	if tag := req.GetString("tag", ""); tag != "" {
		selected = []string{tag}
	}
	notes := notestore.Visible(s.store.Notes(), query, selected)
	out, _ := json.MarshalIndent(notes, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, ok := s.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	detail := struct {
		models.Note
		Chat []models.ChatMessage `json:"chat,omitempty"`
	}{Note: note, Chat: s.store.History(id)}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note := s.store.Create()
	patch := models.NotePatch{}
	if title := req.GetString("title", ""); title != "" {
		patch.Title = &title
	}
	if content := req.GetString("content", ""); content != "" {
		patch.Content = &content
	}
	if !patch.IsZero() {
		s.store.Update(note.ID, patch)
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", note.ID)), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	patch := models.NotePatch{}
	if title := req.GetString("title", ""); title != "" {
		patch.Title = &title
	}
	if content := req.GetString("content", ""); content != "" {
		patch.Content = &content
	}
	if color := req.GetString("color", ""); color != "" {
		patch.Color = &color
	}
	if patch.IsZero() {
		return mcp.NewToolResultError("nothing to update: provide title, content, or color"), nil
	}
	if !s.store.Update(id, patch) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", id)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.store.Delete(id) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) addTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.store.AddTag(id, tag) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("tagged %s with %q", id, tag)), nil
}

func (s *Server) pinNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pinned, err := req.RequireBool("pinned")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ok := false
	if pinned {
		ok = s.store.Pin(id)
	} else {
		ok = s.store.Unpin(id)
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("pinned=%v: %s", pinned, id)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := s.store.AllTags()
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags"), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) askAssistant(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exchange, err := s.chat.Send(ctx, id, prompt)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(exchange.Assistant.Content), nil
}

func (s *Server) readWorkspaceGuide(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://workspace-guide",
			MIMEType: "text/markdown",
			Text:     WorkspaceGuide,
		},
	}, nil
}
