package client

import (
	"context"
	"net/http"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginResponse carries the bearer token and the account
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return &resp, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return &resp, nil
}

// GetCurrentUser retrieves the currently authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
