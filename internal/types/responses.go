package types

// ------------------------------
// Response Types
// ------------------------------

// Record is the raw store record returned by search/list/get.
type Record struct {
	ID        string   `json:"id"`
	Memory    string   `json:"memory"`
	Metadata  Metadata `json:"metadata"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
	Score     *float64 `json:"score,omitempty"`
}

// AddResponse carries the store-assigned id of a created entry.
type AddResponse struct {
	ID string `json:"id"`
}

// ListResponse wraps the v2 list endpoint result. Search, by contrast,
// returns a bare array of records; the asymmetry is part of the store's
// contract and is preserved here.
type ListResponse struct {
	Results []Record `json:"results"`
	Count   int      `json:"count"`
	Next    *string  `json:"next"`
}

// StoreUser is one account row from the store's users endpoint.
type StoreUser struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	TotalMemories int    `json:"total_memories"`
	CreatedAt     string `json:"created_at"`
}

// UsersResponse wraps the users endpoint result.
type UsersResponse struct {
	Results       []StoreUser `json:"results"`
	TotalUsers    int         `json:"total_users"`
	TotalAgents   int         `json:"total_agents"`
	TotalMemories int         `json:"total_memories"`
}
