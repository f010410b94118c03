package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveFollowsRedirectChain(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hop1":
			http.Redirect(w, r, "/hop2", http.StatusFound)
		case "/hop2":
			http.Redirect(w, r, "/article", http.StatusMovedPermanently)
		case "/article":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	r := NewRedirectResolver(server.Client())
	final, err := r.Resolve(context.Background(), server.URL+"/hop1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if final != server.URL+"/article" {
		t.Fatalf("unexpected final url: %s", final)
	}
}

func TestResolveReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	r := NewRedirectResolver(server.Client())
	if _, err := r.Resolve(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for 410 response")
	}
}

func TestResolveUsesHead(t *testing.T) {
	t.Parallel()

	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRedirectResolver(server.Client())
	if _, err := r.Resolve(context.Background(), server.URL); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if method != http.MethodHead {
		t.Fatalf("expected HEAD request, got %s", method)
	}
}
