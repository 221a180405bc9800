// Package admin implements the user-directory operations of the admin
// screen. It is a pass-through to the remote API plus a cached copy of the
// listing, so a single updated record merges back without re-fetching the
// whole directory.
package admin

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/api"
	"github.com/dmitrijs2005/authconsole/internal/logging"
	"github.com/dmitrijs2005/authconsole/internal/models"
)

type Service struct {
	client api.Client
	log    logging.Logger

	mu    sync.RWMutex
	users []models.User
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{client: client, log: log.With("component", "admin")}
}

// List fetches the full directory and replaces the cached copy.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	return s.Users(), nil
}

// Users returns a copy of the cached directory listing.
func (s *Service) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// Get fetches a single record and merges it into the cache.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.client.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.merge(*user)
	return user, nil
}

// Enable re-activates the account and merges the updated record.
func (s *Service) Enable(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.client.EnableUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.merge(*user)
	return user, nil
}

// Disable deactivates the account and merges the updated record.
func (s *Service) Disable(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.client.DisableUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.merge(*user)
	return user, nil
}

// AssignRole changes the account's role and merges the updated record.
func (s *Service) AssignRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	user, err := s.client.AssignRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.merge(*user)
	return user, nil
}

// merge replaces the cached record with the matching id, leaving every other
// record untouched. A record not yet in the cache is appended.
func (s *Service) merge(updated models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == updated.ID {
			s.users[i] = updated
			return
		}
	}
	s.users = append(s.users, updated)
}
