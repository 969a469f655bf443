package rest

import (
	"context"
	"net/http"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// Register creates the user plus shop and signs in. The backend also seeds
// the shop's default price list.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out, nil); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// Login signs in; the access token is retained on the client.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out, nil); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// Logout invalidates the session server-side and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Me returns the authenticated user and shop identity.
func (c *Client) Me(ctx context.Context) (*entity.Me, error) {
	var out entity.Me
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
