package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akshat1423/memoire/internal/types"
)

// SearchEntries runs a v2 search against the store. The response is a bare
// JSON array of records (the list endpoint wraps its results; search does
// not, that asymmetry is the store's contract).
func SearchEntries(ctx context.Context, hc *http.Client, baseURL string, opts types.SearchOptions) ([]types.Record, error) {
	if err := types.ValidateUserID(opts.UserID); err != nil {
		return nil, err
	}
	if err := types.ValidatePage(opts.Page, opts.PageSize); err != nil {
		return nil, err
	}
	var recs []types.Record
	u := fmt.Sprintf("%s/v2/entries/search", baseURL)
	if err := doJSON(ctx, hc, http.MethodPost, u, opts, &recs, http.StatusOK); err != nil {
		return nil, err
	}
	return recs, nil
}
