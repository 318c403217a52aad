package filehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDeleteSuccess(t *testing.T) {
	var gotPath, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "private-key", 5*time.Second)
	if err := c.Delete(context.Background(), "file-123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/files/file-123" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotUser != "private-key" {
		t.Fatalf("basic auth user should carry the private key, got %q", gotUser)
	}
}

func TestDeleteNotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 5*time.Second)
	if err := c.Delete(context.Background(), "already-gone"); err != nil {
		t.Fatalf("404 should be idempotent success: %v", err)
	}
}

func TestDeleteServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 5*time.Second)
	if err := c.Delete(context.Background(), "file-123"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestDeleteEmptyIDIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 5*time.Second)
	if err := c.Delete(context.Background(), ""); err != nil {
		t.Fatalf("empty id: %v", err)
	}
	if called {
		t.Fatal("empty id should not hit the host")
	}
}

func TestUploadSignature(t *testing.T) {
	c := NewClient("https://host.example", "key", 0)

	sig := c.NewUploadSignature(10 * time.Minute)
	if sig.Token == "" || sig.Signature == "" {
		t.Fatalf("incomplete signature: %+v", sig)
	}
	if sig.Expire <= time.Now().Unix() {
		t.Fatalf("expire should be in the future, got %d", sig.Expire)
	}

	other := c.NewUploadSignature(10 * time.Minute)
	if other.Token == sig.Token {
		t.Fatal("tokens must be unique per signature")
	}
}
