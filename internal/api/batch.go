package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akshat1423/memoire/internal/types"
)

type batchUpdateRequest struct {
	Operation string                  `json:"operation"`
	Items     []types.BatchUpdateItem `json:"items"`
}

type batchDeleteRequest struct {
	Operation string                  `json:"operation"`
	Items     []types.BatchDeleteItem `json:"items"`
}

// BatchUpdateEntries replaces the text of several entries in one call.
func BatchUpdateEntries(ctx context.Context, hc *http.Client, baseURL string, items []types.BatchUpdateItem) error {
	for _, it := range items {
		if err := types.ValidateEntryID(it.EntryID); err != nil {
			return err
		}
	}
	u := fmt.Sprintf("%s/v1/entries/batch", baseURL)
	return doJSON(ctx, hc, http.MethodPost, u, batchUpdateRequest{Operation: "update", Items: items}, nil, http.StatusOK)
}

// BatchDeleteEntries removes several entries in one call.
func BatchDeleteEntries(ctx context.Context, hc *http.Client, baseURL string, items []types.BatchDeleteItem) error {
	for _, it := range items {
		if err := types.ValidateEntryID(it.EntryID); err != nil {
			return err
		}
	}
	u := fmt.Sprintf("%s/v1/entries/batch", baseURL)
	return doJSON(ctx, hc, http.MethodPost, u, batchDeleteRequest{Operation: "delete", Items: items}, nil, http.StatusOK)
}
