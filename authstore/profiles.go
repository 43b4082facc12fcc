package authstore

import (
	"context"
	"time"
)

// Profile is the per-account profile row.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetProfile fetches the profile row for id. Returns ErrProfileNotFound when
// the row does not exist.
func (c *Client) GetProfile(ctx context.Context, id string) (*Profile, error) {
	var rows []Profile
	path := "/rest/v1/profiles?id=eq." + escape(id) + "&select=*"
	if err := c.doJSON(ctx, "GET", path, nil, &rows, 200); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProfileNotFound
	}
	return &rows[0], nil
}

// UpsertProfile inserts or updates the profile row keyed by p.ID.
func (c *Client) UpsertProfile(ctx context.Context, p Profile) error {
	if p.ID == "" {
		return ErrNoSession
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	return c.doJSONWith(ctx, "POST", "/rest/v1/profiles?on_conflict=id", headers, p, nil, 200, 201, 204)
}
