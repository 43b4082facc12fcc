package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akshat1423/memoire/internal/types"
)

func score(v float64) *float64 { return &v }

// pagerServer returns the same record set for every page; the pager's
// confidence split decides which hits surface on which page.
func pagerServer(t *testing.T, recs []types.Record) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(recs)
	}))
}

func TestSearchPagerConfidenceSplit(t *testing.T) {
	t.Parallel()

	recs := []types.Record{
		{ID: "a", Metadata: types.Metadata{"type": "text"}, Score: score(0.9)},
		{ID: "b", Metadata: types.Metadata{"type": "text"}, Score: score(0.5)},
		{ID: "c", Metadata: types.Metadata{"type": "text"}, Score: score(0.3)},
		{ID: "d", Metadata: types.Metadata{"type": "text"}, Score: score(0.4)},
	}
	srv := pagerServer(t, recs)
	defer srv.Close()

	c := New(srv.URL, "k")
	pager := c.NewSearchPager("q", SearchFilters{PageSize: 10})

	if !pager.HasMore() {
		t.Fatal("HasMore must be true before the first fetch")
	}

	page1, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(page1) != 2 || page1[0].ID != "a" || page1[1].ID != "b" {
		t.Fatalf("page 1 = %v, want only the high-confidence hits in order", ids(page1))
	}
	if !pager.HasMore() {
		t.Fatal("low-confidence hits were held back, HasMore must be true")
	}

	page2, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(page2) != 2 || page2[0].ID != "c" || page2[1].ID != "d" {
		t.Fatalf("page 2 = %v, want the low-confidence hits in arrival order", ids(page2))
	}
	if pager.HasMore() {
		t.Fatal("partial page must end the iteration")
	}

	page3, err := pager.Next(context.Background())
	if err != nil || page3 != nil {
		t.Fatalf("exhausted pager returned (%v, %v)", page3, err)
	}
}

func TestSearchPagerAllHighConfidence(t *testing.T) {
	t.Parallel()

	recs := []types.Record{
		{ID: "a", Metadata: types.Metadata{"type": "text"}, Score: score(0.8)},
		{ID: "b", Metadata: types.Metadata{"type": "text"}, Score: score(0.7)},
	}
	srv := pagerServer(t, recs)
	defer srv.Close()

	c := New(srv.URL, "k")
	pager := c.NewSearchPager("q", SearchFilters{PageSize: 10})

	page1, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 = %v", ids(page1))
	}
	if pager.HasMore() {
		t.Fatal("no low hits and a partial page: HasMore must be false")
	}
}

func TestSearchPagerFullPageHintsMore(t *testing.T) {
	t.Parallel()

	recs := []types.Record{
		{ID: "a", Metadata: types.Metadata{"type": "text"}, Score: score(0.9)},
		{ID: "b", Metadata: types.Metadata{"type": "text"}, Score: score(0.8)},
	}
	srv := pagerServer(t, recs)
	defer srv.Close()

	c := New(srv.URL, "k")
	pager := c.NewSearchPager("q", SearchFilters{PageSize: 2})

	if _, err := pager.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !pager.HasMore() {
		t.Fatal("an exactly full page must hint at more results")
	}
}

// Unscored and zero-scored hits never surface on any page.
func TestSearchPagerDropsUnscoredHits(t *testing.T) {
	t.Parallel()

	recs := []types.Record{
		{ID: "a", Metadata: types.Metadata{"type": "text"}, Score: score(0.9)},
		{ID: "b", Metadata: types.Metadata{"type": "text"}}, // no score
		{ID: "c", Metadata: types.Metadata{"type": "text"}, Score: score(0)},
		{ID: "d", Metadata: types.Metadata{"type": "text"}, Score: score(0.1)},
	}
	srv := pagerServer(t, recs)
	defer srv.Close()

	c := New(srv.URL, "k")
	pager := c.NewSearchPager("q", SearchFilters{PageSize: 10})

	page1, _ := pager.Next(context.Background())
	if len(page1) != 1 || page1[0].ID != "a" {
		t.Fatalf("page 1 = %v", ids(page1))
	}

	page2, _ := pager.Next(context.Background())
	if len(page2) != 1 || page2[0].ID != "d" {
		t.Fatalf("page 2 = %v, unscored hits must never surface", ids(page2))
	}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
