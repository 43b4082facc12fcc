// Package api holds the raw wire calls against the memory store. Each call
// is synchronous, carries no retry policy, and surfaces failures once; retry
// decisions belong to callers (the background cleanup queue is the only one
// that makes any).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierrors "github.com/akshat1423/memoire/internal/errors"
)

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil). Any status outside wantStatus
// yields a classified HTTP error.
func doJSON(ctx context.Context, hc *http.Client, method, url string, body any, out any, wantStatus ...int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return apierrors.NewNetworkError(fmt.Sprintf("%s %s", method, req.URL.Path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode, wantStatus) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apierrors.NewHTTPError(fmt.Sprintf("%s %s", method, req.URL.Path), resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusOK(got int, want []int) bool {
	for _, w := range want {
		if got == w {
			return true
		}
	}
	return false
}
