package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

var _ ports.UsersAPI = (*Client)(nil)

type assignRoleRequest struct {
	RoleName string `json:"role_name"`
}

// ListUsers returns every account; administrators only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "admin/users/", path: "admin/users/", session: true}, &out)
	return out, err
}

// AssignRole gives the user the named role; administrators only.
func (c *Client) AssignRole(ctx context.Context, userID int64, role string) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "admin/users/{id}/assign-role/",
		path:     fmt.Sprintf("admin/users/%d/assign-role/", userID),
		body:     assignRoleRequest{RoleName: role},
		session:  true,
	}, nil)
}
