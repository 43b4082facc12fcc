// Package authstore is the client for the auth/storage backend: account
// sessions, profile rows, and the media upload edge functions. It is
// independent of the memory-store SDK; the journal service composes the two.
package authstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	apierrors "github.com/akshat1423/memoire/internal/errors"
)

// User is the authenticated account identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session holds the tokens returned by a successful sign-in or sign-up.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// Client talks to one auth/storage backend. The zero value is unusable; use
// New. A Client is safe for concurrent use; the current session is guarded by
// a mutex.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client during construction.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// New constructs a Client for the backend at baseURL using anonKey for
// unauthenticated calls. Panics on empty arguments, matching the memory-store
// client's construction contract.
func New(baseURL, anonKey string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if anonKey == "" {
		panic("anonKey cannot be empty")
	}
	c := &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// bearerToken returns the session access token when signed in, otherwise the
// anon key. Every request carries one of the two.
func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil {
		return c.session.AccessToken
	}
	return c.anonKey
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Client) currentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// doJSON issues a request against the backend with the apikey and bearer
// headers set, decoding the JSON response into out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, wantStatus ...int) error {
	return c.doJSONWith(ctx, method, path, nil, body, out, wantStatus...)
}

func (c *Client) doJSONWith(ctx context.Context, method, path string, headers map[string]string, body any, out any, wantStatus ...int) error {
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

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
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
