package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/applymate/applymate-api/internal/identity"
	"github.com/applymate/applymate-api/internal/models"
	"github.com/applymate/applymate-api/internal/provider"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CredentialStore is what the vault needs from the relational store. The
// Upsert must be atomic on the user_id unique key — the vault performs no
// locking of its own and must not need to.
type CredentialStore interface {
	Upsert(ctx context.Context, cred *models.ProviderCredential) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.ProviderCredential, error)
}

// TokenVault stores and refreshes the provider's OAuth tokens on behalf of a
// user, one credential row per identity.
type TokenVault struct {
	Store    CredentialStore
	Provider provider.Verifier
	Log      zerolog.Logger
}

func NewTokenVault(store CredentialStore, p provider.Verifier, log zerolog.Logger) *TokenVault {
	return &TokenVault{Store: store, Provider: p, Log: log}
}

// LinkProvider validates the session's provider access token and writes the
// credential row. The row is fully replaced on re-link, refresh token
// included: if the new session carried none, the stored one is dropped. That
// replacement semantic is deliberate and under product review; the warning
// below measures how often it bites.
//
// Returns the provider account email for display. Token values never leave
// this method.
func (v *TokenVault) LinkProvider(ctx context.Context, ident *identity.Identity, session *identity.ProviderSession) (string, error) {
	if session == nil || session.AccessToken == "" {
		return "", ErrMissingProviderToken
	}

	// 1. Prove the token is live by using it once against the provider.
	acct, err := v.Provider.VerifyAccessToken(ctx, session.AccessToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderTokenInvalid, err)
	}

	// 2. Observe (not prevent) the refresh-token drop. Purely a metric
	// read; the write below does not depend on it.
	if session.RefreshToken == "" {
		existing, err := v.Store.FindByUser(ctx, ident.ID)
		if err == nil && existing.RefreshToken != "" {
			v.Log.Warn().
				Str("user_id", ident.ID.String()).
				Msg("re-link without refresh token overwrites a stored refresh token")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			v.Log.Warn().Err(err).Msg("could not check existing credential before re-link")
		}
	}

	// 3. Atomic upsert keyed on user_id. The provider does not return an
	// expiry here, so it is computed from the documented lifetime.
	cred := &models.ProviderCredential{
		UserID:        ident.ID,
		AccessToken:   session.AccessToken,
		RefreshToken:  session.RefreshToken,
		ExpiresAt:     time.Now().Add(provider.TokenLifetime),
		ProviderEmail: acct.Email,
	}
	if err := v.Store.Upsert(ctx, cred); err != nil {
		return "", fmt.Errorf("storing provider credential: %w", err)
	}

	return acct.Email, nil
}
