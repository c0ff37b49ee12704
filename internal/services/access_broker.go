package services

import (
	"context"
	"fmt"
	"time"

	"github.com/applymate/applymate-api/internal/identity"
	"github.com/applymate/applymate-api/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GrantTTL is how long an issued access URL stays valid. The grant is
// stateless: the storage layer enforces the expiry, nothing here tracks or
// revokes it after issue.
const GrantTTL = 60 * time.Second

// canonicalDocumentName is the single resume slot every user has. Re-upload
// overwrites it; there is no document collection.
const canonicalDocumentName = "resume.pdf"

// DocumentKey derives the canonical object key for a user. The prefix comes
// from the authenticated identity and never from request input, which is the
// whole ownership story.
func DocumentKey(userID uuid.UUID) string {
	return userID.String() + "/" + canonicalDocumentName
}

// ResourceAccessBroker issues short-lived signed URLs for a user's stored
// document without ever handing out storage credentials.
type ResourceAccessBroker struct {
	Blob storage.Store
	Log  zerolog.Logger
}

func NewResourceAccessBroker(blob storage.Store, log zerolog.Logger) *ResourceAccessBroker {
	return &ResourceAccessBroker{Blob: blob, Log: log}
}

// IssueAccessGrant returns a signed URL for the caller's document. The
// existence check against the store itself is mandatory: the backend would
// happily sign a URL for a missing object, and the client could not tell
// that from "temporarily unavailable".
func (b *ResourceAccessBroker) IssueAccessGrant(ctx context.Context, ident *identity.Identity) (string, error) {
	key := DocumentKey(ident.ID)

	keys, err := b.Blob.ListPrefix(ctx, ident.ID.String()+"/")
	if err != nil {
		return "", fmt.Errorf("%w: listing documents: %v", ErrResourceAccessFailed, err)
	}
	found := false
	for _, k := range keys {
		if k == key {
			found = true
			break
		}
	}
	if !found {
		return "", ErrResourceNotFound
	}

	signedURL, err := b.Blob.PresignGet(ctx, key, GrantTTL)
	if err != nil {
		return "", fmt.Errorf("%w: signing url: %v", ErrResourceAccessFailed, err)
	}
	return signedURL, nil
}
