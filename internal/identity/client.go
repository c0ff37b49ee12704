package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthenticated means the caller's bearer credential was missing,
// malformed, or not recognized by the identity store.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the resolved caller: the identity store's stable user id plus
// the verified email. Facts only, no decisions.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// ProviderSession carries the third-party OAuth tokens that ride on the
// caller's identity-store session. Either token may be empty; the vault
// decides what that means.
type ProviderSession struct {
	AccessToken  string `json:"provider_token"`
	RefreshToken string `json:"provider_refresh_token"`
}

// Verifier is the AuthGate boundary: prove a bearer credential and resolve
// who it belongs to. Session additionally returns the provider tokens the
// store holds for that session.
type Verifier interface {
	Verify(ctx context.Context, bearer string) (*Identity, error)
	Session(ctx context.Context, bearer string) (*Identity, *ProviderSession, error)
}

// Admin is the privileged surface used only by account erasure.
type Admin interface {
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// Client talks to the identity store over HTTP. The service key
// authenticates the admin surface; user-facing calls authenticate with the
// caller's own bearer token.
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
	}
}

// Verify resolves a bearer token to an identity. Any rejection by the store
// maps to ErrUnauthenticated; transport and server-side failures surface
// as-is so callers can tell "bad credential" from "store down".
func (c *Client) Verify(ctx context.Context, bearer string) (*Identity, error) {
	if bearer == "" {
		return nil, ErrUnauthenticated
	}
	var ident Identity
	if err := c.get(ctx, "/auth/v1/user", bearer, &ident); err != nil {
		return nil, err
	}
	if ident.ID == uuid.Nil {
		return nil, fmt.Errorf("identity store returned no user id")
	}
	return &ident, nil
}

// Session resolves the bearer token to the identity plus the provider tokens
// stored alongside the session.
func (c *Client) Session(ctx context.Context, bearer string) (*Identity, *ProviderSession, error) {
	if bearer == "" {
		return nil, nil, ErrUnauthenticated
	}
	var payload struct {
		User Identity `json:"user"`
		ProviderSession
	}
	if err := c.get(ctx, "/auth/v1/session", bearer, &payload); err != nil {
		return nil, nil, err
	}
	if payload.User.ID == uuid.Nil {
		return nil, nil, fmt.Errorf("identity store returned no user id")
	}
	return &payload.User, &payload.ProviderSession, nil
}

// DeleteUser removes the identity record. This is the erasure saga's final
// step and authenticates with the service key, not the (soon to be dead)
// user credential.
func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	url := fmt.Sprintf("%s/auth/v1/admin/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("identity store delete failed: %d", res.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, bearer string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusOK:
		return json.NewDecoder(res.Body).Decode(out)
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return ErrUnauthenticated
	default:
		return fmt.Errorf("identity store error: %d", res.StatusCode)
	}
}
