// ABOUTME: HTTP client for the platform's auth endpoints over the request pipeline
// ABOUTME: Implements the session.Gateway contract consumed by the manager

package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/starcinema/starticket/internal/pipeline"
	"github.com/starcinema/starticket/internal/session"
)

// authPayload is the auth endpoints' data payload: the identity fields plus
// the issued token, flattened.
type authPayload struct {
	session.Identity
	Token     string `json:"token"`
	TokenType string `json:"tokenType,omitempty"`
}

// Client talks to the auth gateway. It holds no state of its own; the
// pipeline supplies credentials and failure classification.
type Client struct {
	pipe *pipeline.Pipeline
}

// New creates an auth gateway client over the given pipeline.
func New(pipe *pipeline.Pipeline) *Client {
	return &Client{pipe: pipe}
}

// Login exchanges credentials for a session. Marked as the login call so
// the classifier suppresses the global notice; the caller shows the
// failure inline.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (*session.AuthResult, error) {
	var payload authPayload
	err := c.pipe.Do(ctx, pipeline.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   creds,
		Login:  true,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &session.AuthResult{Token: payload.Token, Identity: payload.Identity}, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, reg session.Registration) (*session.AuthResult, error) {
	var payload authPayload
	err := c.pipe.Do(ctx, pipeline.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   reg,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &session.AuthResult{Token: payload.Token, Identity: payload.Identity}, nil
}

// Refresh exchanges the current credential (attached by the pipeline) for a
// fresh one.
func (c *Client) Refresh(ctx context.Context) (*session.AuthResult, error) {
	var payload authPayload
	err := c.pipe.Do(ctx, pipeline.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/refresh",
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &session.AuthResult{Token: payload.Token, Identity: payload.Identity}, nil
}

// Logout tells the gateway to discard the credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.pipe.Do(ctx, pipeline.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	}, nil)
}

// CheckUsername reports whether the username is already taken.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	return c.check(ctx, "/api/auth/check-username", "username", username)
}

// CheckEmail reports whether the email is already registered.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	return c.check(ctx, "/api/auth/check-email", "email", email)
}

func (c *Client) check(ctx context.Context, path, param, value string) (bool, error) {
	q := url.Values{}
	q.Set(param, value)

	var exists bool
	err := c.pipe.Do(ctx, pipeline.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  q,
	}, &exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
