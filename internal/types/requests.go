package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// Message is the single message shape the store's add endpoint accepts.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AddRequest holds parameters for creating an entry in the store.
type AddRequest struct {
	Messages []Message `json:"messages"`
	UserID   string    `json:"user_id"`
	Metadata Metadata  `json:"metadata,omitempty"`
}

// SearchOptions is the v2 search request: free-text query plus an optional
// structured filter tree (logical AND of predicates).
type SearchOptions struct {
	Query    string         `json:"query"`
	UserID   string         `json:"user_id"`
	Page     int            `json:"page,omitempty"`
	PageSize int            `json:"page_size,omitempty"`
	Filters  map[string]any `json:"filters,omitempty"`
}

// ListOptions is the v2 list request (no text query).
type ListOptions struct {
	UserID   string         `json:"user_id"`
	Page     int            `json:"page,omitempty"`
	PageSize int            `json:"page_size,omitempty"`
	Filters  map[string]any `json:"filters,omitempty"`
}

// UpdateRequest replaces the text body of an existing entry.
type UpdateRequest struct {
	Text string `json:"text"`
}

// BatchUpdateItem is one item of a batch update.
type BatchUpdateItem struct {
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
}

// BatchDeleteItem is one item of a batch delete.
type BatchDeleteItem struct {
	EntryID string `json:"entry_id"`
}

// SearchFilters is the UI-level filter set translated into SearchOptions.
// Zero values mean "no constraint". DateFrom/DateTo are truncated to whole
// days when sent to the store.
type SearchFilters struct {
	Query    string
	Types    []EntryType
	Tags     []string
	Location string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
