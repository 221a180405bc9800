package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/models"
	"github.com/dmitrijs2005/authconsole/internal/session"
)

// capturePrintln redirects printlnFn into a slice of lines for assertions.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(lines *[]string) string {
	return strings.Join(*lines, "\n")
}

func userFixture(email string, admin bool) *models.User {
	role := models.RoleUser
	if admin {
		role = models.RoleAdmin
	}
	return &models.User{
		ID:      uuid.New(),
		Name:    strings.Split(email, "@")[0],
		Email:   email,
		Role:    role,
		Enabled: true,
	}
}

// stubInputs replaces the interactive input seams. Successive getSimpleText
// calls return the texts in order.
func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		s := texts[i%len(texts)]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// fakeSession implements SessionService.
type fakeSession struct {
	user *models.User

	loginErr    error
	registerErr error

	loginEmail    string
	loginPassword string
	registerName  string
	logoutCalled  int
}

func (f *fakeSession) Resolve(context.Context) session.State {
	if f.user != nil {
		return session.StateAuthenticated
	}
	return session.StateUnauthenticated
}

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	if f.user == nil {
		f.user = &models.User{Email: email, Role: models.RoleUser}
	}
	return nil
}

func (f *fakeSession) Register(_ context.Context, name, email, password string) error {
	f.registerName = name
	if f.registerErr != nil {
		return f.registerErr
	}
	f.user = &models.User{Name: name, Email: email, Role: models.RoleUser}
	return nil
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalled++
	f.user = nil
}

func (f *fakeSession) Authenticated() bool { return f.user != nil }
func (f *fakeSession) IsAdmin() bool       { return f.user.IsAdmin() }

func (f *fakeSession) CurrentUser() *models.User {
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

// fakeAdmin implements AdminService.
type fakeAdmin struct {
	listResp []models.User
	listErr  error

	userResp *models.User
	userErr  error

	lastID   uuid.UUID
	lastRole models.Role
}

func (f *fakeAdmin) List(context.Context) ([]models.User, error) {
	return f.listResp, f.listErr
}

func (f *fakeAdmin) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.lastID = id
	return f.userResp, f.userErr
}

func (f *fakeAdmin) Enable(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.lastID = id
	return f.userResp, f.userErr
}

func (f *fakeAdmin) Disable(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.lastID = id
	return f.userResp, f.userErr
}

func (f *fakeAdmin) AssignRole(_ context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	f.lastID, f.lastRole = id, role
	return f.userResp, f.userErr
}
