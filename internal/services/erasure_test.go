package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeProfileStore struct {
	deleted []uuid.UUID
	err     error
}

func (s *fakeProfileStore) HardDelete(_ context.Context, userID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, userID)
	return nil
}

type fakeIdentityAdmin struct {
	deleted []uuid.UUID
	err     error
}

func (a *fakeIdentityAdmin) DeleteUser(_ context.Context, userID uuid.UUID) error {
	if a.err != nil {
		return a.err
	}
	a.deleted = append(a.deleted, userID)
	return nil
}

func TestEraseFullyErased(t *testing.T) {
	ident := testIdentity()
	blob := newFakeBlob(DocumentKey(ident.ID))
	profiles := &fakeProfileStore{}
	admin := &fakeIdentityAdmin{}
	coord := NewAccountErasureCoordinator(profiles, blob, admin, zerolog.Nop())

	out := coord.Erase(context.Background(), ident)
	if out.Status != StatusFullyErased {
		t.Fatalf("want FULLY_ERASED, got %s", out.Status)
	}
	if out.Err() != nil {
		t.Fatalf("successful run must not report an error: %v", out.Err())
	}
	if len(blob.keys) != 0 {
		t.Fatalf("blobs not purged: %v", blob.keys)
	}
	if len(profiles.deleted) != 1 || profiles.deleted[0] != ident.ID {
		t.Fatalf("profile not deleted: %v", profiles.deleted)
	}
	if len(admin.deleted) != 1 || admin.deleted[0] != ident.ID {
		t.Fatalf("identity not deleted: %v", admin.deleted)
	}
}

// A failing blob purge is recorded but never blocks the rest of the saga.
func TestEraseBlobFailureStillFullyErases(t *testing.T) {
	ident := testIdentity()
	blob := newFakeBlob(DocumentKey(ident.ID))
	blob.removeErr = fmt.Errorf("storage timeout")
	profiles := &fakeProfileStore{}
	admin := &fakeIdentityAdmin{}
	coord := NewAccountErasureCoordinator(profiles, blob, admin, zerolog.Nop())

	out := coord.Erase(context.Background(), ident)
	if out.Status != StatusFullyErased {
		t.Fatalf("blob failure must not change the terminal state, got %s", out.Status)
	}
	if out.BlobErr == nil {
		t.Fatal("blob failure must be recorded in the outcome")
	}
	if len(admin.deleted) != 1 {
		t.Fatal("identity purge must still run after a blob failure")
	}
}

// A relational failure aborts before the identity step: the identity must
// remain resolvable and no delete call may reach the identity store.
func TestEraseAbortsAtRelational(t *testing.T) {
	ident := testIdentity()
	blob := newFakeBlob()
	profiles := &fakeProfileStore{err: fmt.Errorf("deadlock detected")}
	admin := &fakeIdentityAdmin{}
	coord := NewAccountErasureCoordinator(profiles, blob, admin, zerolog.Nop())

	out := coord.Erase(context.Background(), ident)
	if out.Status != StatusAbortedAtRelational {
		t.Fatalf("want ABORTED_AT_RELATIONAL, got %s", out.Status)
	}
	if len(admin.deleted) != 0 {
		t.Fatal("identity purge must never run after a relational failure")
	}
	if out.Err() == nil || out.RelationalErr == nil {
		t.Fatal("relational failure must surface in the outcome")
	}
}

func TestErasePartialIdentityRetained(t *testing.T) {
	ident := testIdentity()
	blob := newFakeBlob(DocumentKey(ident.ID))
	profiles := &fakeProfileStore{}
	admin := &fakeIdentityAdmin{err: fmt.Errorf("admin api 503")}
	coord := NewAccountErasureCoordinator(profiles, blob, admin, zerolog.Nop())

	out := coord.Erase(context.Background(), ident)
	if out.Status != StatusPartiallyErasedIdentityRetained {
		t.Fatalf("want PARTIALLY_ERASED_IDENTITY_RETAINED, got %s", out.Status)
	}
	if len(profiles.deleted) != 1 {
		t.Fatal("relational purge should have run before the identity failure")
	}
	if out.Err() == nil {
		t.Fatal("identity failure must surface loudly")
	}
}
