package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T, userID uuid.UUID) (*httptest.Server, *[]string) {
	t.Helper()
	var adminCalls []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"id":%q,"email":"user@example.com"}`, userID)
	})
	mux.HandleFunc("GET /auth/v1/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"user":{"id":%q,"email":"user@example.com"},"provider_token":"ya29.x","provider_refresh_token":"1//r"}`, userID)
	})
	mux.HandleFunc("DELETE /auth/v1/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer service-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		adminCalls = append(adminCalls, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &adminCalls
}

func TestVerify(t *testing.T) {
	userID := uuid.New()
	srv, _ := newTestStore(t, userID)
	client := NewClient(srv.URL, "service-key", 5*time.Second)

	ident, err := client.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ident.ID != userID || ident.Email != "user@example.com" {
		t.Fatalf("wrong identity: %+v", ident)
	}

	if _, err := client.Verify(context.Background(), "bad-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unrecognized token: want ErrUnauthenticated, got %v", err)
	}
	if _, err := client.Verify(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("empty token: want ErrUnauthenticated, got %v", err)
	}
}

func TestSession(t *testing.T) {
	userID := uuid.New()
	srv, _ := newTestStore(t, userID)
	client := NewClient(srv.URL, "service-key", 5*time.Second)

	ident, sess, err := client.Session(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if ident.ID != userID {
		t.Fatalf("wrong identity: %+v", ident)
	}
	if sess.AccessToken != "ya29.x" || sess.RefreshToken != "1//r" {
		t.Fatalf("provider tokens not surfaced: %+v", sess)
	}
}

func TestDeleteUser(t *testing.T) {
	userID := uuid.New()
	srv, adminCalls := newTestStore(t, userID)
	client := NewClient(srv.URL, "service-key", 5*time.Second)

	if err := client.DeleteUser(context.Background(), userID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	want := "/auth/v1/admin/users/" + userID.String()
	if len(*adminCalls) != 1 || (*adminCalls)[0] != want {
		t.Fatalf("admin delete not issued correctly: %v", *adminCalls)
	}

	bad := NewClient(srv.URL, "wrong-key", 5*time.Second)
	if err := bad.DeleteUser(context.Background(), userID); err == nil {
		t.Fatal("delete with a bad service key must fail")
	}
}

func TestVerifyStoreDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "service-key", 5*time.Second)

	_, err := client.Verify(context.Background(), "good-token")
	if err == nil || errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("a 5xx is a store failure, not a bad credential: %v", err)
	}
}
