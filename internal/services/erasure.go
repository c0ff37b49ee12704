package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/applymate/applymate-api/internal/identity"
	"github.com/applymate/applymate-api/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErasureStatus names the terminal states of the erasure saga. They stay
// distinct all the way to the caller and the logs; collapsing them into a
// generic failure would hide which store still holds data.
type ErasureStatus string

const (
	// StatusFullyErased: relational and identity purges succeeded. The
	// blob purge may still have failed — an orphan blob under a dead
	// identity prefix is unreachable garbage, not an exposure.
	StatusFullyErased ErasureStatus = "FULLY_ERASED"

	// StatusAbortedAtRelational: the relational purge failed, nothing
	// past the blob step was attempted, the identity is intact.
	StatusAbortedAtRelational ErasureStatus = "ABORTED_AT_RELATIONAL"

	// StatusPartiallyErasedIdentityRetained: data is gone but the
	// identity record survived its delete. The user can still sign in to
	// an empty account — a support escalation, not a retry.
	StatusPartiallyErasedIdentityRetained ErasureStatus = "PARTIALLY_ERASED_IDENTITY_RETAINED"
)

// ErasureOutcome aggregates the per-step results of one saga run. Transient;
// nothing persists it.
type ErasureOutcome struct {
	Status        ErasureStatus
	BlobErr       error
	RelationalErr error
	IdentityErr   error
}

// Err returns the error a caller should see for a failed run, prefixed with
// the terminal state so partial failures stay distinguishable.
func (o *ErasureOutcome) Err() error {
	switch o.Status {
	case StatusAbortedAtRelational:
		return fmt.Errorf("%s: %v", o.Status, o.RelationalErr)
	case StatusPartiallyErasedIdentityRetained:
		return fmt.Errorf("%s: %v", o.Status, o.IdentityErr)
	default:
		return nil
	}
}

// ProfileStore is the relational side of erasure: one hard delete of the
// top-level row. The store's declared cascade contract removes every
// dependent row (credentials, applications, research, letters) — the
// coordinator does not enumerate child tables.
type ProfileStore interface {
	HardDelete(ctx context.Context, userID uuid.UUID) error
}

// AccountErasureCoordinator runs the irreversible, cross-store account
// erasure saga. Strict order: blobs, relational rows, identity record. The
// identity is only ever deleted after data removal was attempted.
type AccountErasureCoordinator struct {
	Profiles ProfileStore
	Blob     storage.Store
	Identity identity.Admin
	Log      zerolog.Logger
}

func NewAccountErasureCoordinator(profiles ProfileStore, blob storage.Store, admin identity.Admin, log zerolog.Logger) *AccountErasureCoordinator {
	return &AccountErasureCoordinator{Profiles: profiles, Blob: blob, Identity: admin, Log: log}
}

// Erase executes the saga for an already-authenticated, already-confirmed
// request. Each step reports independently; see ErasureStatus for the
// ordering rules.
func (c *AccountErasureCoordinator) Erase(ctx context.Context, ident *identity.Identity) *ErasureOutcome {
	out := &ErasureOutcome{}
	log := c.Log.With().Str("user_id", ident.ID.String()).Logger()

	// 1. BlobPurge — best effort. A storage hiccup must not block account
	// deletion; once the identity is gone the leftover object is
	// unreachable anyway.
	if err := c.purgeBlobs(ctx, ident.ID); err != nil {
		out.BlobErr = fmt.Errorf("blob purge: %w", err)
		log.Warn().Err(err).Msg("blob purge failed, continuing erasure")
	}

	// 2. RelationalPurge — fatal on failure. Deleting the identity while
	// relational data survives would orphan personal data with no
	// controlling identity, which is exactly what this operation exists
	// to prevent.
	if err := c.Profiles.HardDelete(ctx, ident.ID); err != nil {
		out.RelationalErr = fmt.Errorf("relational purge: %w", err)
		out.Status = StatusAbortedAtRelational
		log.Error().Err(err).Msg("relational purge failed, erasure aborted before identity deletion")
		return out
	}

	// 3. IdentityPurge — only reached after the data is gone.
	if err := c.Identity.DeleteUser(ctx, ident.ID); err != nil {
		out.IdentityErr = fmt.Errorf("identity purge: %w", err)
		out.Status = StatusPartiallyErasedIdentityRetained
		log.Error().Err(err).Msg("identity purge failed after data removal, account requires manual escalation")
		return out
	}

	out.Status = StatusFullyErased
	log.Info().Bool("blob_purge_clean", out.BlobErr == nil).Msg("account fully erased")
	return out
}

func (c *AccountErasureCoordinator) purgeBlobs(ctx context.Context, userID uuid.UUID) error {
	keys, err := c.Blob.ListPrefix(ctx, userID.String()+"/")
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if err := c.Blob.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
