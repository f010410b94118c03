package usecase

import (
	"context"
	"fmt"
	"testing"
)

type stubResolver struct {
	resolved map[string]string
	err      error
	calls    int
}

func (s *stubResolver) Resolve(ctx context.Context, link string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.resolved[link], nil
}

func TestHashURLFixedDigest(t *testing.T) {
	t.Parallel()

	const want = "0cf9e7265c9128ff615a65d2e62f4ba648c5de830be8a08efc0d11515bbae35b"
	if got := HashURL("https://real.example/article"); got != want {
		t.Fatalf("unexpected digest: %s", got)
	}
}

func TestCanonicalIDDeterminism(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{resolved: map[string]string{
		"https://redirect.example/a": "https://real.example/article",
		"https://redirect.example/b": "https://real.example/article",
	}}
	identity := NewIdentityResolver(resolver, nil)

	ctx := context.Background()
	idA, finalA := identity.CanonicalID(ctx, "https://redirect.example/a")
	idB, finalB := identity.CanonicalID(ctx, "https://redirect.example/b")

	if finalA != "https://real.example/article" || finalB != finalA {
		t.Fatalf("unexpected final urls: %s, %s", finalA, finalB)
	}
	if idA != idB {
		t.Fatalf("ids differ for same final url: %s vs %s", idA, idB)
	}
	if idA != HashURL(finalA) {
		t.Fatalf("id does not match hash of final url")
	}
}

func TestCanonicalIDFallsBackOnResolutionFailure(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{err: fmt.Errorf("timeout")}
	identity := NewIdentityResolver(resolver, nil)

	id, finalURL := identity.CanonicalID(context.Background(), "https://redirect.example/a")

	if finalURL != "https://redirect.example/a" {
		t.Fatalf("expected fallback to raw link, got %s", finalURL)
	}
	if id != HashURL("https://redirect.example/a") {
		t.Fatalf("expected hash of raw link, got %s", id)
	}
}
