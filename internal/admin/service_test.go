package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authconsole/internal/api"
	"github.com/dmitrijs2005/authconsole/internal/logging"
	"github.com/dmitrijs2005/authconsole/internal/models"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// fakeClient implements api.Client for directory tests; only the admin
// operations carry behavior.
type fakeClient struct {
	ListResp []models.User
	ListErr  error

	UserResp *models.User
	UserErr  error

	LastID   uuid.UUID
	LastRole models.Role
}

func (f *fakeClient) Login(context.Context, string, string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeClient) Register(context.Context, string, string, string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeClient) Refresh(context.Context, string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeClient) CurrentUser(context.Context) (*models.User, error) { return nil, nil }

func (f *fakeClient) ListUsers(context.Context) ([]models.User, error) {
	return f.ListResp, f.ListErr
}

func (f *fakeClient) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.LastID = id
	return f.UserResp, f.UserErr
}

func (f *fakeClient) EnableUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.LastID = id
	return f.UserResp, f.UserErr
}

func (f *fakeClient) DisableUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.LastID = id
	return f.UserResp, f.UserErr
}

func (f *fakeClient) AssignRole(_ context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	f.LastID, f.LastRole = id, role
	return f.UserResp, f.UserErr
}

func (f *fakeClient) Ping(context.Context) error { return nil }
func (f *fakeClient) SetAccessToken(string)      {}

func directory() []models.User {
	return []models.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Alice", Email: "a@b.com", Role: models.RoleUser, Enabled: true},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Bob", Email: "b@b.com", Role: models.RoleUser, Enabled: true},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Name: "Root", Email: "r@b.com", Role: models.RoleAdmin, Enabled: true},
	}
}

func TestList_PopulatesCache(t *testing.T) {
	client := &fakeClient{ListResp: directory()}
	s := NewService(client, testLogger())

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, users, s.Users())
}

func TestList_ErrorLeavesCacheUntouched(t *testing.T) {
	client := &fakeClient{ListResp: directory()}
	s := NewService(client, testLogger())
	_, err := s.List(context.Background())
	require.NoError(t, err)

	client.ListErr = &api.Error{Status: 403, ErrorText: "Forbidden"}
	_, err = s.List(context.Background())
	require.Error(t, err)
	require.Len(t, s.Users(), 3)
}

func TestAssignRole_MergesOnlyThatRecord(t *testing.T) {
	users := directory()
	target := users[0]

	updated := target
	updated.Role = models.RoleAdmin

	client := &fakeClient{ListResp: users, UserResp: &updated}
	s := NewService(client, testLogger())
	_, err := s.List(context.Background())
	require.NoError(t, err)

	got, err := s.AssignRole(context.Background(), target.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, target.ID, client.LastID)
	require.Equal(t, models.RoleAdmin, client.LastRole)

	// The returned record has the new role and every other field unchanged.
	require.Equal(t, models.RoleAdmin, got.Role)
	require.Equal(t, target.Name, got.Name)
	require.Equal(t, target.Email, got.Email)
	require.Equal(t, target.Enabled, got.Enabled)

	// Only the one cached record changed.
	cached := s.Users()
	require.Len(t, cached, 3)
	require.Equal(t, models.RoleAdmin, cached[0].Role)
	require.Equal(t, users[1], cached[1])
	require.Equal(t, users[2], cached[2])
}

func TestDisable_MergesUpdatedRecord(t *testing.T) {
	users := directory()
	updated := users[1]
	updated.Enabled = false

	client := &fakeClient{ListResp: users, UserResp: &updated}
	s := NewService(client, testLogger())
	_, err := s.List(context.Background())
	require.NoError(t, err)

	got, err := s.Disable(context.Background(), updated.ID)
	require.NoError(t, err)
	require.False(t, got.Enabled)

	cached := s.Users()
	require.False(t, cached[1].Enabled)
	require.Equal(t, users[0], cached[0])
	require.Equal(t, users[2], cached[2])
}

func TestEnable_PropagatesError(t *testing.T) {
	client := &fakeClient{UserErr: &api.Error{Status: 404, ErrorText: "Not Found"}}
	s := NewService(client, testLogger())

	_, err := s.Enable(context.Background(), uuid.New())
	require.Error(t, err)

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.Status)
}

func TestGet_AppendsUnseenRecord(t *testing.T) {
	fresh := models.User{ID: uuid.New(), Name: "New", Email: "n@b.com", Role: models.RoleUser}
	client := &fakeClient{UserResp: &fresh}
	s := NewService(client, testLogger())

	got, err := s.Get(context.Background(), fresh.ID)
	require.NoError(t, err)
	require.Equal(t, fresh, *got)
	require.Len(t, s.Users(), 1)
}
