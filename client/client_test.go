package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akshat1423/memoire/internal/types"
)

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

const testEntryID = "3b7e9c1a-61f2-4f6e-9b3d-6f2a1e8c4d50"

func TestNewPanicsOnMissingArgs(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ base, key string }{
		{"", "key"},
		{"http://store", ""},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q, %q) did not panic", tc.base, tc.key)
				}
			}()
			New(tc.base, tc.key)
		}()
	}
}

func TestCreateEntrySendsBearerAndNormalizedRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		var req types.AddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.UserID != AnonymousUserID {
			t.Errorf("user_id = %q, want anonymous fallback", req.UserID)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "pier at dusk" {
			t.Errorf("messages = %+v, want single caption message", req.Messages)
		}
		if req.Metadata[types.MetaType] != "image" {
			t.Errorf("metadata type = %v", req.Metadata[types.MetaType])
		}
		if req.Metadata[types.MetaImageURL] != "https://cdn.example/p.jpg" {
			t.Errorf("image_url = %v", req.Metadata[types.MetaImageURL])
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": testEntryID})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	entry, err := c.CreateEntry(context.Background(), EntryTypeImage, "https://cdn.example/p.jpg", Metadata{
		types.MetaCaption: "pier at dusk",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.ID != testEntryID || entry.ImageURI != "https://cdn.example/p.jpg" || entry.Caption != "pier at dusk" {
		t.Fatalf("synthesized entry = %+v", entry)
	}
	if entry.CreatedAt == nil {
		t.Fatal("synthesized entry must carry timestamps")
	}
}

func TestUserResolver(t *testing.T) {
	t.Parallel()

	var gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.AddRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotUser = req.UserID
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": testEntryID})
	}))
	defer srv.Close()

	t.Run("resolved id is used", func(t *testing.T) {
		c := New(srv.URL, "k", WithUserResolver(func(context.Context) (string, error) {
			return "user-42", nil
		}))
		if _, err := c.CreateEntry(context.Background(), EntryTypeText, "hi", nil); err != nil {
			t.Fatal(err)
		}
		if gotUser != "user-42" {
			t.Fatalf("user_id = %q", gotUser)
		}
	})

	t.Run("resolver failure falls back to anonymous", func(t *testing.T) {
		c := New(srv.URL, "k", WithUserResolver(func(context.Context) (string, error) {
			return "", errors.New("session expired")
		}))
		if _, err := c.CreateEntry(context.Background(), EntryTypeText, "hi", nil); err != nil {
			t.Fatal(err)
		}
		if gotUser != AnonymousUserID {
			t.Fatalf("user_id = %q, want anonymous fallback", gotUser)
		}
	})
}

func TestGetEntryNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	if _, err := c.GetEntry(context.Background(), testEntryID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchAppliesPostFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var opts types.SearchOptions
		_ = json.NewDecoder(r.Body).Decode(&opts)
		if opts.Filters == nil {
			t.Error("expected a structured filter tree in the request")
		}
		// The store ignores the type filter; the client must re-apply it.
		_ = json.NewEncoder(w).Encode([]types.Record{
			{ID: "a", Memory: "x", Metadata: types.Metadata{"type": "text"}},
			{ID: "b", Memory: "y", Metadata: types.Metadata{"type": "image"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	entries, err := c.Search(context.Background(), SearchFilters{
		Query: "q",
		Types: []types.EntryType{types.EntryTypeImage},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Fatalf("entries = %+v, want only the image record", entries)
	}
}

func TestListReportsHasNext(t *testing.T) {
	t.Parallel()

	next := "/v2/entries/list?page=2"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ListResponse{
			Results: []types.Record{{ID: "a", Metadata: types.Metadata{"type": "text"}}},
			Count:   25,
			Next:    &next,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	res, err := c.List(context.Background(), "u1", 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !res.HasNext || res.Count != 25 || len(res.Entries) != 1 {
		t.Fatalf("res = %+v", res)
	}
}

func TestEntriesOnDateSendsDayFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var opts types.ListOptions
		_ = json.NewDecoder(r.Body).Decode(&opts)
		and, ok := opts.Filters["AND"].([]any)
		if !ok || len(and) != 1 {
			t.Errorf("filters = %v, want one-predicate AND tree", opts.Filters)
		} else {
			rng := and[0].(map[string]any)["created_at"].(map[string]any)
			if rng["gte"] != "2025-06-15" || rng["lte"] != "2025-06-15" {
				t.Errorf("created_at = %v", rng)
			}
		}
		_ = json.NewEncoder(w).Encode(types.ListResponse{})
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	day := mustDate("2025-06-15")
	if _, err := c.EntriesOnDate(context.Background(), day, "u1"); err != nil {
		t.Fatalf("EntriesOnDate: %v", err)
	}
}

func TestBatchDeleteEntries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/entries/batch" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Operation string                  `json:"operation"`
			Items     []types.BatchDeleteItem `json:"items"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Operation != "delete" || len(req.Items) != 2 {
			t.Errorf("request = %+v", req)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	err := c.BatchDeleteEntries(context.Background(), []BatchDeleteItem{
		{EntryID: testEntryID},
		{EntryID: "7c2f4d9e-8a31-4b5c-9d6e-0f1a2b3c4d5e"},
	})
	if err != nil {
		t.Fatalf("BatchDeleteEntries: %v", err)
	}
}
