// Package api implements the HTTP client for the remote authentication
// service. It owns transport concerns only: endpoint paths, bearer
// credentials on outgoing requests, and decoding of structured error bodies.
// Refresh policy and session state live in the session package.
package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/models"
)

// Client is the remote contract the console consumes.
//
// Every call surfaces HTTP-layer failures either as common.ErrUnavailable
// (no response received) or as *Error (non-2xx status). No call retries and
// no call refreshes tokens.
type Client interface {
	// Auth exchanges. All three return the same response shape.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)

	// CurrentUser fetches the account record of the bearer token's owner.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Admin directory operations. The server re-validates the caller's role.
	ListUsers(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnableUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	DisableUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	AssignRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)

	// Ping checks server liveness.
	Ping(ctx context.Context) error

	// SetAccessToken replaces the bearer credential attached to subsequent
	// requests. An empty string detaches it.
	SetAccessToken(token string)
}
