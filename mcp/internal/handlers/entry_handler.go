package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	clientpkg "github.com/akshat1423/memoire/client"
)

// EntryHandler exposes create_entry, get_entry, and delete_entry tools.
type EntryHandler struct {
	client *clientpkg.Client
}

// NewEntryHandler returns a new handler.
func NewEntryHandler(c *clientpkg.Client) *EntryHandler {
	return &EntryHandler{client: c}
}

// RegisterTools registers entry tools.
func (eh *EntryHandler) RegisterTools(s *server.MCPServer) error {
	createEntry := mcp.NewTool("create_entry",
		mcp.WithDescription("Create a journal entry. For text entries the payload is the body; for image/audio/stored-images entries it is the uploaded media URL (or a JSON dictionary of image1..imageN URLs)."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Entry type: text, image, audio, or stored-images")),
		mcp.WithString("payload", mcp.Required(), mcp.Description("Text body or media URL depending on type")),
		mcp.WithObject("metadata", mcp.Description("Optional metadata object (title, caption, tags, mood, location, ...)")),
	)
	s.AddTool(createEntry, eh.handleCreateEntry)

	getEntry := mcp.NewTool("get_entry",
		mcp.WithDescription("Get a single journal entry by its id"),
		mcp.WithString("entry_id", mcp.Required(), mcp.Description("The UUID of the entry")),
	)
	s.AddTool(getEntry, eh.handleGetEntry)

	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Delete a journal entry by its id"),
		mcp.WithString("entry_id", mcp.Required(), mcp.Description("The UUID of the entry")),
	)
	s.AddTool(deleteEntry, eh.handleDeleteEntry)

	return nil
}

func (eh *EntryHandler) handleCreateEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entryType, _ := req.RequireString("type")
	payload, _ := req.RequireString("payload")

	meta := clientpkg.Metadata{}
	if m, ok := req.GetArguments()["metadata"].(map[string]any); ok {
		meta = clientpkg.Metadata(m)
	}

	log.Debug().
		Str("type", entryType).
		Int("payload_len", len(payload)).
		Msg("handling create_entry request")

	start := time.Now()
	entry, err := eh.client.CreateEntry(ctx, clientpkg.EntryType(entryType), payload, meta)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("type", entryType).
			Dur("elapsed", elapsed).
			Msg("create_entry failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to create entry: %v", err)), nil
	}

	log.Debug().
		Str("entry_id", entry.ID).
		Str("type", entryType).
		Dur("elapsed", elapsed).
		Msg("create_entry completed")

	return jsonResult(entry)
}

func (eh *EntryHandler) handleGetEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entryID, _ := req.RequireString("entry_id")

	entry, err := eh.client.GetEntry(ctx, entryID)
	if err != nil {
		log.Error().Err(err).Str("entry_id", entryID).Msg("get_entry failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to get entry: %v", err)), nil
	}
	return jsonResult(entry)
}

func (eh *EntryHandler) handleDeleteEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entryID, _ := req.RequireString("entry_id")

	if err := eh.client.DeleteEntry(ctx, entryID); err != nil {
		log.Error().Err(err).Str("entry_id", entryID).Msg("delete_entry failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete entry: %v", err)), nil
	}
	return mcp.NewToolResultText("deleted"), nil
}

// jsonResult marshals v into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(buf)), nil
}
