package authstore

import (
	"context"
	"net/url"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges email/password credentials for a session and installs it
// on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.doJSON(ctx, "POST", "/auth/v1/token?grant_type=password",
		credentials{Email: email, Password: password}, &s, 200)
	if err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// SignUp registers a new account. Backends with email confirmation enabled
// return a session without an access token; the caller signs in after
// confirming.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.doJSON(ctx, "POST", "/auth/v1/signup",
		credentials{Email: email, Password: password}, &s, 200)
	if err != nil {
		return nil, err
	}
	if s.AccessToken != "" {
		c.setSession(&s)
	}
	return &s, nil
}

// SignOut revokes the current session. The local session is cleared even when
// the revoke call fails; anonymous mode is always reachable.
func (c *Client) SignOut(ctx context.Context) error {
	if c.currentSession() == nil {
		return nil
	}
	err := c.doJSON(ctx, "POST", "/auth/v1/logout", nil, nil, 200, 204)
	c.setSession(nil)
	return err
}

// ResetPassword sends a password recovery email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, "POST", "/auth/v1/recover",
		map[string]string{"email": email}, nil, 200)
}

// UpdatePassword changes the signed-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	if c.currentSession() == nil {
		return ErrNoSession
	}
	return c.doJSON(ctx, "PUT", "/auth/v1/user",
		map[string]string{"password": newPassword}, nil, 200)
}

// CurrentUser fetches the identity behind the current session. It returns
// (nil, nil) when no session exists: running without an account is a
// supported mode, not an error.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if c.currentSession() == nil {
		return nil, nil
	}
	var u User
	if err := c.doJSON(ctx, "GET", "/auth/v1/user", nil, &u, 200); err != nil {
		return nil, err
	}
	return &u, nil
}

// SessionUserID is a user resolver for the memory-store client. It returns
// the signed-in account id, or empty without error when no session exists so
// the caller falls back to its anonymous placeholder.
func (c *Client) SessionUserID(ctx context.Context) (string, error) {
	s := c.currentSession()
	if s == nil {
		return "", nil
	}
	return s.User.ID, nil
}

// escape is a tiny helper for values interpolated into query strings.
func escape(v string) string { return url.QueryEscape(v) }
