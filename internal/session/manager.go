// Package session owns the current-user state of the console. It is the only
// component that decides what a persisted token pair means: valid,
// expired-but-refreshable, or garbage. Screens consume the derived flags and
// the narrow operation set; nothing outside this package mutates the state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/authconsole/internal/api"
	"github.com/dmitrijs2005/authconsole/internal/claims"
	"github.com/dmitrijs2005/authconsole/internal/common"
	"github.com/dmitrijs2005/authconsole/internal/logging"
	"github.com/dmitrijs2005/authconsole/internal/models"
	"github.com/dmitrijs2005/authconsole/internal/tokenstore"
)

// Manager is the session state machine:
//
//	StateUnknown → StateUnauthenticated | StateAuthenticated
//
// Resolve performs the startup transition; Login/Register/Logout move
// between the terminal states. All methods are safe for concurrent use.
type Manager struct {
	client api.Client
	store  tokenstore.Store
	log    logging.Logger

	refreshGroup singleflight.Group

	// now is a clock seam for tests.
	now func() time.Time

	mu    sync.RWMutex
	state State
	user  *models.User
}

func NewManager(client api.Client, store tokenstore.Store, log logging.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		log:    log.With("component", "session"),
		now:    time.Now,
		state:  StateUnknown,
	}
}

// Resolve runs the one-time startup check and returns the terminal state it
// reached. It must complete before any screen renders content gated on
// authentication status.
//
// The decision tree, in order:
//  1. no persisted pair            → unauthenticated, no network call
//  2. access token undecodable     → clear store, unauthenticated, no network call
//  3. expiry still in the future   → ask the server who we are
//  4. expiry passed                → exchange the refresh token
//
// Every failure path resolves to StateUnauthenticated with the store cleared;
// nothing here is fatal to the process.
func (m *Manager) Resolve(ctx context.Context) State {
	pair, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			m.log.Warn(ctx, "token load failed", "err", err)
		}
		return m.toUnauthenticated(ctx, false)
	}

	c, err := claims.Decode(pair.AccessToken)
	if err != nil {
		m.log.Warn(ctx, "stored access token is malformed")
		return m.toUnauthenticated(ctx, true)
	}

	if c.ExpiresAfter(m.now()) {
		return m.resolveFresh(ctx, pair)
	}
	return m.resolveExpired(ctx, pair)
}

// resolveFresh handles an access token that still looks unexpired: the server
// gets the final word, since the token may have been revoked.
func (m *Manager) resolveFresh(ctx context.Context, pair models.TokenPair) State {
	m.client.SetAccessToken(pair.AccessToken)

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored access token rejected", "err", err)
		return m.toUnauthenticated(ctx, true)
	}

	return m.toAuthenticated(ctx, user)
}

// resolveExpired exchanges the refresh token for a new access token. Only the
// access token is rewritten on success: the service does not rotate refresh
// tokens, so the stored one stays valid until logout or rejection.
func (m *Manager) resolveExpired(ctx context.Context, pair models.TokenPair) State {
	resp, err := m.refresh(ctx, pair.RefreshToken)
	if err != nil {
		m.log.Warn(ctx, "token refresh failed", "err", err)
		return m.toUnauthenticated(ctx, true)
	}

	renewed := models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: pair.RefreshToken}
	if err := m.store.Save(ctx, renewed); err != nil {
		m.log.Error(ctx, "failed to persist refreshed tokens", "err", err)
		return m.toUnauthenticated(ctx, true)
	}

	m.client.SetAccessToken(resp.AccessToken)
	return m.toAuthenticated(ctx, &resp.User)
}

// refresh performs the refresh exchange behind a single-flight guard: at most
// one outstanding refresh call, concurrent callers share its result.
func (m *Manager) refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	v, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.client.Refresh(ctx, refreshToken)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AuthResponse), nil
}

// Login authenticates with the given credentials. On success the returned
// pair is persisted and the session becomes authenticated. On failure the
// error propagates untouched — callers decide how to present field-level
// validation messages — and the session state is left as it was.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(ctx, resp)
}

// Register creates an account and, like Login, adopts the returned session
// on success.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	resp, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.adopt(ctx, resp)
}

// adopt persists the full token pair from a successful auth exchange and
// transitions to StateAuthenticated. If persisting fails the session state
// stays unchanged, so a failed write never produces a half-applied login.
func (m *Manager) adopt(ctx context.Context, resp *models.AuthResponse) error {
	if err := m.store.Save(ctx, resp.Tokens()); err != nil {
		return err
	}

	m.client.SetAccessToken(resp.AccessToken)
	m.toAuthenticated(ctx, &resp.User)
	return nil
}

// Logout tears the session down locally: persisted tokens cleared, in-memory
// user dropped, bearer credential detached. It never fails and is idempotent;
// no server call is made.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "token clear failed", "err", err)
	}
	m.client.SetAccessToken("")

	m.mu.Lock()
	m.user = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()
}

func (m *Manager) toUnauthenticated(ctx context.Context, clearStore bool) State {
	if clearStore {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn(ctx, "token clear failed", "err", err)
		}
		m.client.SetAccessToken("")
	}

	m.mu.Lock()
	m.user = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()
	return StateUnauthenticated
}

func (m *Manager) toAuthenticated(ctx context.Context, user *models.User) State {
	m.mu.Lock()
	u := *user
	m.user = &u
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.log.Info(ctx, "session established", "email", user.Email, "role", user.Role)
	return StateAuthenticated
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether a user is populated.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsAdmin reports whether the cached user carries the admin role. UX hint
// only: the server re-validates every privileged action.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.IsAdmin()
}

// CurrentUser returns a copy of the cached user, or nil when unauthenticated.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}
