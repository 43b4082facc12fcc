package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apierrors "github.com/akshat1423/memoire/internal/errors"
	"github.com/akshat1423/memoire/internal/types"
)

// AddEntry creates an entry in the store and returns the assigned id.
func AddEntry(ctx context.Context, hc *http.Client, baseURL string, req types.AddRequest) (*types.AddResponse, error) {
	if err := types.ValidateUserID(req.UserID); err != nil {
		return nil, err
	}
	var resp types.AddResponse
	u := fmt.Sprintf("%s/v1/entries", baseURL)
	if err := doJSON(ctx, hc, http.MethodPost, u, req, &resp, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEntry retrieves a single raw record by id. A 404 maps to ErrNotFound.
func GetEntry(ctx context.Context, hc *http.Client, baseURL, id string) (*types.Record, error) {
	if err := types.ValidateEntryID(id); err != nil {
		return nil, err
	}
	var rec types.Record
	u := fmt.Sprintf("%s/v1/entries/%s", baseURL, url.PathEscape(id))
	if err := doJSON(ctx, hc, http.MethodGet, u, nil, &rec, http.StatusOK); err != nil {
		return nil, notFoundOr(err)
	}
	return &rec, nil
}

// EntryHistory retrieves the revision history of an entry, oldest first.
func EntryHistory(ctx context.Context, hc *http.Client, baseURL, id string) ([]types.Record, error) {
	if err := types.ValidateEntryID(id); err != nil {
		return nil, err
	}
	var recs []types.Record
	u := fmt.Sprintf("%s/v1/entries/%s/history", baseURL, url.PathEscape(id))
	if err := doJSON(ctx, hc, http.MethodGet, u, nil, &recs, http.StatusOK); err != nil {
		return nil, notFoundOr(err)
	}
	return recs, nil
}

// UpdateEntry replaces the text body of an existing entry.
func UpdateEntry(ctx context.Context, hc *http.Client, baseURL, id, text string) error {
	if err := types.ValidateEntryID(id); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/v1/entries/%s", baseURL, url.PathEscape(id))
	return notFoundOr(doJSON(ctx, hc, http.MethodPut, u, types.UpdateRequest{Text: text}, nil, http.StatusOK, http.StatusNoContent))
}

// DeleteEntry removes an entry by id. The store answers 200 or 204.
func DeleteEntry(ctx context.Context, hc *http.Client, baseURL, id string) error {
	if err := types.ValidateEntryID(id); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/v1/entries/%s", baseURL, url.PathEscape(id))
	return notFoundOr(doJSON(ctx, hc, http.MethodDelete, u, nil, nil, http.StatusOK, http.StatusNoContent))
}

// DeleteAllEntries removes every entry belonging to userID.
func DeleteAllEntries(ctx context.Context, hc *http.Client, baseURL, userID string) error {
	if err := types.ValidateUserID(userID); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/v1/entries?user_id=%s", baseURL, url.QueryEscape(userID))
	return doJSON(ctx, hc, http.MethodDelete, u, nil, nil, http.StatusOK, http.StatusNoContent)
}

// ListEntries retrieves a page of raw records via the v2 list endpoint.
// Unlike search, the response is wrapped in a results object.
func ListEntries(ctx context.Context, hc *http.Client, baseURL string, opts types.ListOptions) (*types.ListResponse, error) {
	if err := types.ValidateUserID(opts.UserID); err != nil {
		return nil, err
	}
	if err := types.ValidatePage(opts.Page, opts.PageSize); err != nil {
		return nil, err
	}
	var resp types.ListResponse
	u := fmt.Sprintf("%s/v2/entries/list", baseURL)
	if err := doJSON(ctx, hc, http.MethodPost, u, opts, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// notFoundOr converts a classified 404 into ErrNotFound and passes everything
// else through unchanged.
func notFoundOr(err error) error {
	var ce *apierrors.ClassifiedError
	if errors.As(err, &ce) && ce.StatusCode == http.StatusNotFound {
		return types.ErrNotFound
	}
	return err
}
