package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akshat1423/memoire/internal/types"
)

// ListUsers retrieves the store's account summary rows with aggregate counts.
func ListUsers(ctx context.Context, hc *http.Client, baseURL string) (*types.UsersResponse, error) {
	var resp types.UsersResponse
	u := fmt.Sprintf("%s/v1/users", baseURL)
	if err := doJSON(ctx, hc, http.MethodGet, u, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
