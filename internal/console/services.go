package console

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/models"
	"github.com/dmitrijs2005/authconsole/internal/session"
)

// SessionService is the slice of the session manager the screens consume:
// derived read-only flags plus the narrow operation set.
type SessionService interface {
	Resolve(ctx context.Context) session.State
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
	Authenticated() bool
	IsAdmin() bool
	CurrentUser() *models.User
}

// AdminService is the directory contract of the admin screen.
type AdminService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Enable(ctx context.Context, id uuid.UUID) (*models.User, error)
	Disable(ctx context.Context, id uuid.UUID) (*models.User, error)
	AssignRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
}
