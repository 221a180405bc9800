package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/common"
	"github.com/dmitrijs2005/authconsole/internal/logging"
	"github.com/dmitrijs2005/authconsole/internal/models"
)

// HTTPClient is the Client implementation over net/http. The access token is
// guarded by a mutex: the session manager replaces it on login/refresh while
// other goroutines (e.g. the reachability watcher) may be issuing requests.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient builds a client for the service rooted at baseURL
// (e.g. "http://127.0.0.1:8080"). The timeout applies per request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentAccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// do issues one request and decodes the response into out (out may be nil).
// Transport failures wrap common.ErrUnavailable; non-2xx statuses decode into
// *Error, falling back to a synthesized one when the body is not the
// structured shape.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentAccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(ctx, resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	c.log.Debug(ctx, "request ok", "method", method, "path", path, "status", resp.StatusCode)
	return nil
}

func (c *HTTPClient) decodeError(ctx context.Context, resp *http.Response, method, path string) error {
	apiErr := &Error{}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if readErr != nil || json.Unmarshal(raw, apiErr) != nil || apiErr.Status == 0 {
		apiErr = &Error{
			Status:    resp.StatusCode,
			ErrorText: http.StatusText(resp.StatusCode),
		}
	}
	c.log.Warn(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	resp := &models.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	resp := &models.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	req := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	resp := &models.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users/"+id.String(), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) EnableUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodPut, "/api/admin/users/"+id.String()+"/enable", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) DisableUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodPut, "/api/admin/users/"+id.String()+"/disable", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) AssignRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	req := struct {
		Role models.Role `json:"role"`
	}{Role: role}

	user := &models.User{}
	if err := c.do(ctx, http.MethodPut, "/api/admin/users/"+id.String()+"/role", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
