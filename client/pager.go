package client

import (
	"context"

	"github.com/akshat1423/memoire/internal/types"
)

// SearchPager walks a search result set page by page, splitting hits by
// relevance score. The first page surfaces only high-confidence hits
// (score > 0.4); subsequent pages surface the low-confidence remainder in
// arrival order. A hit with no score, or a score of zero, never surfaces.
type SearchPager struct {
	client  *Client
	query   string
	filters SearchFilters

	page     int
	pageSize int
	hasMore  bool
}

// NewSearchPager returns a pager for query constrained by filters.
// Page and PageSize on filters are ignored; the pager tracks its own cursor.
func (c *Client) NewSearchPager(query string, filters SearchFilters) *SearchPager {
	size := filters.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return &SearchPager{
		client:   c,
		query:    query,
		filters:  filters,
		page:     1,
		pageSize: size,
		hasMore:  true,
	}
}

// HasMore reports whether another call to Next may yield results. It is true
// before the first fetch, and afterwards whenever the previous page hinted at
// more data: a full page, or (on page one) any low-confidence hits that were
// held back.
func (p *SearchPager) HasMore() bool { return p.hasMore }

// Next fetches the next page and returns the hits that pass the confidence
// split for the current cursor position. It returns an empty slice once the
// result set is exhausted.
func (p *SearchPager) Next(ctx context.Context) ([]Entry, error) {
	if !p.hasMore {
		return nil, nil
	}

	f := p.filters
	f.Query = p.query
	f.Page = p.page
	f.PageSize = p.pageSize

	entries, err := p.client.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	var kept []types.Entry
	if p.page == 1 {
		anyLow := false
		for _, e := range entries {
			switch {
			case e.HighConfidence():
				kept = append(kept, e)
			case e.LowConfidence():
				anyLow = true
			}
		}
		// Low-confidence hits held back on page one resurface on later
		// pages, so their presence alone means there is more to show.
		p.hasMore = anyLow || len(entries) == p.pageSize
	} else {
		for _, e := range entries {
			if e.LowConfidence() {
				kept = append(kept, e)
			}
		}
		p.hasMore = len(entries) == p.pageSize
	}

	p.page++
	return kept, nil
}
