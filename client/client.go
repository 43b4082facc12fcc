// Package client is the Go SDK for the Memoire memory store. It normalizes
// journal entry creation requests into the store's message shape, translates
// search filters into the store's structured v2 filter grammar, and maps the
// store's heterogeneous records back into a single tagged-union Entry.
package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/akshat1423/memoire/devmode"
	"github.com/akshat1423/memoire/internal/api"
	"github.com/akshat1423/memoire/internal/mapper"
	"github.com/akshat1423/memoire/internal/types"
)

// AnonymousUserID is the fixed placeholder used when no authenticated
// session exists. Entry creation in anonymous mode is a deliberate
// affordance, not an error.
const AnonymousUserID = "anonymous-user"

// DefaultPageSize is applied when a search or list request leaves PageSize
// unset.
const DefaultPageSize = 10

// UserResolver yields the store user id for the current caller. Returning an
// error (or an empty id) falls back to AnonymousUserID.
type UserResolver func(ctx context.Context) (string, error)

// Client talks to one Memoire memory store. All operations are synchronous
// request/response calls with no retry policy: failures surface once and
// control returns to the caller.
type Client struct {
	baseURL     string
	http        *http.Client
	apiKey      string
	resolveUser UserResolver

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the store at baseURL authenticating with
// apiKey. Additional behavior is configured via functional options.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if apiKey == "" {
		panic("apiKey cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	// Wrap the transport so every request carries the Authorization header.
	c.wrapTransportWithAPIKey()

	return c
}

// NewWithDevMode constructs a Client for a locally run store using the shared
// development mode API key. Never point it at a production deployment.
func NewWithDevMode(baseURL string, opts ...Option) *Client {
	return New(baseURL, devmode.APIKey, opts...)
}

// Close releases client resources. Safe to call multiple times.
func (c *Client) Close() error {
	atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1)
	return nil
}

func (c *Client) wrapTransportWithAPIKey() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{base: base, apiKey: c.apiKey}
}

// apiKeyTransport adds the bearer Authorization header to every request.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// userID resolves the caller's store user id, degrading to the anonymous
// placeholder when no resolver is configured or the resolver fails.
func (c *Client) userID(ctx context.Context) string {
	if c.resolveUser == nil {
		return AnonymousUserID
	}
	id, err := c.resolveUser(ctx)
	if err != nil || id == "" {
		return AnonymousUserID
	}
	return id
}

// --------------------------------------------------------------------
// Entry operations
// --------------------------------------------------------------------

// CreateEntry normalizes (type, payload, metadata) into a store message,
// issues exactly one add call, and returns the optimistic local union object
// synthesized from the inputs and stamped with the store-assigned id.
//
// payload is the text body for text entries and the pre-uploaded remote URL
// (or, for stored-images, the JSON-encoded image1..imageN url dictionary)
// for media entries. Upload of raw bytes is a separate prior step; this call
// never carries binary data.
func (c *Client) CreateEntry(ctx context.Context, entryType EntryType, payload string, meta Metadata) (*Entry, error) {
	message, storeMeta := mapper.Normalize(entryType, payload, meta)

	resp, err := api.AddEntry(ctx, c.http, c.baseURL, types.AddRequest{
		Messages: []types.Message{{Role: "user", Content: message}},
		UserID:   c.userID(ctx),
		Metadata: storeMeta,
	})
	if err != nil {
		return nil, err
	}

	entriesCreatedTotal.WithLabelValues(string(entryType)).Inc()
	entry := mapper.Synthesize(resp.ID, entryType, payload, meta, time.Now().UTC())
	return &entry, nil
}

// GetEntry retrieves one entry by id, mapped into the union. Records without
// a recognizable metadata type come back as EntryTypeUnknown rather than an
// error. Returns ErrNotFound when the store has no such id.
func (c *Client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	rec, err := api.GetEntry(ctx, c.http, c.baseURL, id)
	if err != nil {
		return nil, err
	}
	entry := mapper.MapRecord(*rec)
	return &entry, nil
}

// DeleteEntry removes an entry by id. The wrapper performs no local cache
// invalidation; durable state lives entirely in the store.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	if err := api.DeleteEntry(ctx, c.http, c.baseURL, id); err != nil {
		return err
	}
	entriesDeletedTotal.Inc()
	return nil
}

// UpdateEntry replaces the text body of an existing entry.
func (c *Client) UpdateEntry(ctx context.Context, id, text string) error {
	return api.UpdateEntry(ctx, c.http, c.baseURL, id, text)
}

// EntryHistory returns the revision history of an entry, mapped into the
// union, oldest first.
func (c *Client) EntryHistory(ctx context.Context, id string) ([]Entry, error) {
	recs, err := api.EntryHistory(ctx, c.http, c.baseURL, id)
	if err != nil {
		return nil, err
	}
	return mapper.MapRecords(recs), nil
}

// --------------------------------------------------------------------
// Search and listing
// --------------------------------------------------------------------

// Search translates filters into the store's v2 structured filter tree, runs
// the query as the resolved user, maps the results into the union, and
// re-applies the type and location constraints client-side.
func (c *Client) Search(ctx context.Context, filters SearchFilters) ([]Entry, error) {
	opts := types.SearchOptions{
		Query:    filters.Query,
		UserID:   c.userID(ctx),
		Page:     pageOrDefault(filters.Page),
		PageSize: pageSizeOrDefault(filters.PageSize),
		Filters:  mapper.BuildFilter(filters),
	}

	recs, err := api.SearchEntries(ctx, c.http, c.baseURL, opts)
	if err != nil {
		return nil, err
	}
	searchesTotal.Inc()
	return mapper.PostFilter(mapper.MapRecords(recs), filters), nil
}

// ListResult is one page of a user's entries.
type ListResult struct {
	Entries []Entry
	Count   int
	HasNext bool
}

// List retrieves a page of userID's entries in store order.
func (c *Client) List(ctx context.Context, userID string, page, pageSize int) (*ListResult, error) {
	resp, err := api.ListEntries(ctx, c.http, c.baseURL, types.ListOptions{
		UserID:   userID,
		Page:     pageOrDefault(page),
		PageSize: pageSizeOrDefault(pageSize),
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Entries: mapper.MapRecords(resp.Results),
		Count:   resp.Count,
		HasNext: resp.Next != nil,
	}, nil
}

// EntriesOnDate retrieves every entry userID created on the given calendar
// day, via the list endpoint with an exact-date created_at filter.
func (c *Client) EntriesOnDate(ctx context.Context, day time.Time, userID string) ([]Entry, error) {
	resp, err := api.ListEntries(ctx, c.http, c.baseURL, types.ListOptions{
		UserID:  userID,
		Filters: mapper.DayFilter(day),
	})
	if err != nil {
		return nil, err
	}
	return mapper.MapRecords(resp.Results), nil
}

// --------------------------------------------------------------------
// Account and batch operations
// --------------------------------------------------------------------

// Users returns the store's account rows with aggregate entry counts.
func (c *Client) Users(ctx context.Context) (*UsersResponse, error) {
	return api.ListUsers(ctx, c.http, c.baseURL)
}

// DeleteAllEntries removes every entry belonging to userID.
func (c *Client) DeleteAllEntries(ctx context.Context, userID string) error {
	return api.DeleteAllEntries(ctx, c.http, c.baseURL, userID)
}

// BatchUpdateEntries replaces the text of several entries in one call.
func (c *Client) BatchUpdateEntries(ctx context.Context, items []BatchUpdateItem) error {
	return api.BatchUpdateEntries(ctx, c.http, c.baseURL, items)
}

// BatchDeleteEntries removes several entries in one call.
func (c *Client) BatchDeleteEntries(ctx context.Context, items []BatchDeleteItem) error {
	return api.BatchDeleteEntries(ctx, c.http, c.baseURL, items)
}

func pageOrDefault(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}
