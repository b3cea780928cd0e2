package apiclient

import (
	"context"
	"net/http"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

type loginResponse struct {
	Token string `json:"token"`
}

// registerRequest is the sign-up body; the password confirmation stays local.
type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "login/",
		path:     "login/",
		body:     creds,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Profile fetches the profile that token belongs to.
func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	var p domain.Profile
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "profile/",
		path:     "profile/",
		token:    token,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*ports.RegisterResponse, error) {
	var resp ports.RegisterResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "register/",
		path:     "register/",
		body: registerRequest{
			Username:    reg.Username,
			Email:       reg.Email,
			Password:    reg.Password,
			FirstName:   reg.FirstName,
			LastName:    reg.LastName,
			PhoneNumber: reg.PhoneNumber,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile sends a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (*domain.Profile, error) {
	var p domain.Profile
	err := c.do(ctx, request{
		method:   http.MethodPatch,
		endpoint: "profile/",
		path:     "profile/",
		body:     update,
		token:    token,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Logout invalidates token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "logout/",
		path:     "logout/",
		token:    token,
	}, nil)
}

// ChangePassword changes the password of the user token belongs to.
func (c *Client) ChangePassword(ctx context.Context, token string, change domain.PasswordChange) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "change-password/",
		path:     "change-password/",
		body:     change,
		token:    token,
	}, nil)
}
