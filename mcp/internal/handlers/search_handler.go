package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	clientpkg "github.com/akshat1423/memoire/client"
	"github.com/akshat1423/memoire/internal/types"
)

const maxToolPageSize = 50

// SearchHandler exposes the search_entries tool.
type SearchHandler struct {
	client *clientpkg.Client
}

// NewSearchHandler returns a new handler.
func NewSearchHandler(c *clientpkg.Client) *SearchHandler {
	return &SearchHandler{client: c}
}

// RegisterTools registers search tools.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchEntries := mcp.NewTool("search_entries",
		mcp.WithDescription("Semantic search over journal entries with optional type, tag, location, and date-range filters"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query")),
		mcp.WithString("type", mcp.Description("Restrict to one entry type: text, image, audio, or stored-images")),
		mcp.WithString("tag", mcp.Description("Restrict to entries carrying this tag")),
		mcp.WithString("location", mcp.Description("Restrict to entries whose location city contains this substring")),
		mcp.WithString("date_from", mcp.Description("Earliest creation date, YYYY-MM-DD")),
		mcp.WithString("date_to", mcp.Description("Latest creation date, YYYY-MM-DD")),
		mcp.WithNumber("page", mcp.Description("Page number, default 1")),
		mcp.WithNumber("page_size", mcp.Description("Page size (1-50), default 10")),
	)
	s.AddTool(searchEntries, sh.handleSearchEntries)

	return nil
}

func (sh *SearchHandler) handleSearchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := req.RequireString("query")
	args := req.GetArguments()

	filters := clientpkg.SearchFilters{Query: query}
	if v, ok := args["type"].(string); ok && v != "" {
		filters.Types = []types.EntryType{types.EntryType(v)}
	}
	if v, ok := args["tag"].(string); ok && v != "" {
		filters.Tags = []string{v}
	}
	if v, ok := args["location"].(string); ok {
		filters.Location = v
	}
	if v, ok := args["date_from"].(string); ok && v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return mcp.NewToolResultError("date_from must be YYYY-MM-DD"), nil
		}
		filters.DateFrom = &t
	}
	if v, ok := args["date_to"].(string); ok && v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return mcp.NewToolResultError("date_to must be YYYY-MM-DD"), nil
		}
		filters.DateTo = &t
	}
	if v, ok := args["page"].(float64); ok { // JSON numbers decoded as float64
		filters.Page = int(v)
	}
	if v, ok := args["page_size"].(float64); ok {
		filters.PageSize = int(v)
	}
	if filters.PageSize > maxToolPageSize {
		filters.PageSize = maxToolPageSize
	}

	log.Debug().
		Str("query", query).
		Int("page", filters.Page).
		Msg("handling search_entries request")

	start := time.Now()
	entries, err := sh.client.Search(ctx, filters)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("query", query).
			Dur("elapsed", elapsed).
			Msg("search_entries failed")
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	log.Debug().
		Int("results", len(entries)).
		Dur("elapsed", elapsed).
		Msg("search_entries completed")

	return jsonResult(entries)
}
