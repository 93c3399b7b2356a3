package cocobase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cocobase/cocobase-go/pkg/models"
	"github.com/cocobase/cocobase-go/pkg/storage"
)

const (
	loginPath  = "/auth-collections/login"
	signupPath = "/auth-collections/signup"
	userPath   = "/auth-collections/user"
)

// Login exchanges credentials for a token, persists it and caches the
// current user before returning.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp models.TokenResponse
	creds := models.Credentials{Email: email, Password: password}
	if err := c.request(ctx, http.MethodPost, loginPath, creds, plainBody, &resp); err != nil {
		return err
	}

	c.SetToken(ctx, resp.AccessToken)

	if _, err := c.GetCurrentUser(ctx); err != nil {
		return fmt.Errorf("failed to fetch user after login: %w", err)
	}
	return nil
}

// Register creates an account and stores the returned token. The user is
// then fetched according to Config.UserRefresh; in background mode Register
// returns before the user is cached.
func (c *Client) Register(ctx context.Context, email, password string, data map[string]any) error {
	var resp models.TokenResponse
	creds := models.Credentials{Email: email, Password: password, Data: data}
	if err := c.request(ctx, http.MethodPost, signupPath, creds, plainBody, &resp); err != nil {
		return err
	}

	c.SetToken(ctx, resp.AccessToken)

	if err := c.refreshUser(ctx); err != nil {
		return fmt.Errorf("failed to fetch user after registration: %w", err)
	}
	return nil
}

// Logout forgets the in-memory token. The persisted token and the cached
// user are left in place, so a later InitAuth restores the session.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// IsAuthenticated reports whether the client holds a token. The token is
// not checked against the server.
func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

// GetCurrentUser fetches the user owning the token, caches it and persists
// it.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.AppUser, error) {
	if !c.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	var user *models.AppUser
	if err := c.request(ctx, http.MethodGet, userPath, nil, envelopeBody, &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrEmptyUser
	}

	c.setUser(ctx, user)
	return user, nil
}

// UpdateUser changes the fields set in update. Data is merged onto the
// cached user's data before sending, so keys not mentioned are kept and nil
// values do not clear existing ones.
func (c *Client) UpdateUser(ctx context.Context, update models.UserUpdate) (*models.AppUser, error) {
	if !c.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	body := map[string]any{}
	if update.Data != nil {
		var current map[string]any
		if u := c.User(); u != nil {
			current = u.Data
		}
		body["data"] = models.MergeUserData(current, update.Data)
	}
	if update.Email != nil {
		body["email"] = *update.Email
	}
	if update.Password != nil {
		body["password"] = *update.Password
	}

	var user *models.AppUser
	if err := c.request(ctx, http.MethodPatch, userPath, body, plainBody, &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrEmptyUser
	}

	c.setUser(ctx, user)
	return user, nil
}

// InitAuth restores a session from storage. With a stored token and user
// both are loaded. With a token but no user, the cached user is cleared and
// fetched according to Config.UserRefresh. Without a token the in-memory
// token is cleared.
func (c *Client) InitAuth(ctx context.Context) error {
	token, ok := c.storage.Get(ctx, storage.TokenKey)
	if !ok || token == "" {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return nil
	}

	var user *models.AppUser
	if raw, ok := c.storage.Get(ctx, storage.UserKey); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			c.logger.Warn("ignoring unreadable stored user", "error", err)
			user = nil
		}
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()

	if user != nil {
		return nil
	}

	if err := c.refreshUser(ctx); err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	return nil
}

// TokenClaims decodes the claims of the current token. The signature is not
// verified; use the result for display only.
func (c *Client) TokenClaims() (jwt.MapClaims, error) {
	token := c.Token()
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}
