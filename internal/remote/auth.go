package remote

import (
	"context"
	"net/http"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// TokenResponse is the body of /login and /register.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	in := loginPayload{Email: email, Password: password}
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out TokenResponse
	if err := c.doWithToken(ctx, "", http.MethodPost, "/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, email, password, fullName string) (*TokenResponse, error) {
	in := registerPayload{Email: email, Password: password, FullName: fullName}
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out TokenResponse
	if err := c.doWithToken(ctx, "", http.MethodPost, "/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser resolves token to its user via GET /me.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	if err := c.doWithToken(ctx, token, http.MethodGet, "/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Revoke asks the server to invalidate token.
func (c *Client) Revoke(ctx context.Context, token string) error {
	return c.doWithToken(ctx, token, http.MethodPost, "/logout", nil, nil, nil)
}
