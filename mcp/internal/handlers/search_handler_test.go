package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	clientpkg "github.com/akshat1423/memoire/client"
)

func TestSearchEntriesToolForwardsPagination(t *testing.T) {
	// stub backend search endpoint, recording the pagination it receives
	var gotPage, gotPageSize int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/entries/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode search body: %v", err)
		}
		gotPage, gotPageSize = body.Page, body.PageSize
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	sh := NewSearchHandler(clientpkg.NewWithDevMode(ts.URL))

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"query":     "sunsets",
				"page":      float64(3), // JSON numbers arrive as float64
				"page_size": float64(25),
			},
		},
	}

	res, err := sh.handleSearchEntries(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if res == nil || res.IsError {
		t.Fatalf("unexpected tool error result: %+v", res)
	}
	if gotPage != 3 || gotPageSize != 25 {
		t.Fatalf("store received page=%d page_size=%d, want 3 and 25", gotPage, gotPageSize)
	}
}

func TestSearchEntriesToolCapsPageSize(t *testing.T) {
	var gotPageSize int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PageSize int `json:"page_size"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPageSize = body.PageSize
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	sh := NewSearchHandler(clientpkg.NewWithDevMode(ts.URL))

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"query":     "sunsets",
				"page_size": float64(500),
			},
		},
	}

	if _, err := sh.handleSearchEntries(context.Background(), req); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if gotPageSize != maxToolPageSize {
		t.Fatalf("store received page_size=%d, want cap %d", gotPageSize, maxToolPageSize)
	}
}
