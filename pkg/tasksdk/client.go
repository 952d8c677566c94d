package tasksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the task list API. It covers the public endpoints
// and hands out Sessions for the authenticated ones.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password, http.StatusCreated)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password, http.StatusOK)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string, expected int) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, Credentials{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, expected); err != nil {
		return nil, err
	}

	return &Session{client: c, token: auth.Token, user: auth.User, message: auth.Message}, nil
}

// NewSession wraps a token obtained elsewhere. The user is unknown until the
// token is used.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
