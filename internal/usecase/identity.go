package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/osero2000/coddee-news-app/internal/ports"
)

// IdentityResolver derives the canonical storage id for an article link.
// Aggregator links redirect through tracking URLs that differ per fetch for
// the same story; hashing the redirect target collapses them into one id.
type IdentityResolver struct {
	resolver ports.LinkResolver
	logger   *slog.Logger
}

// NewIdentityResolver wires the redirect resolver.
func NewIdentityResolver(resolver ports.LinkResolver, logger *slog.Logger) *IdentityResolver {
	return &IdentityResolver{resolver: resolver, logger: logger}
}

// CanonicalID resolves the link to its final URL and hashes it. Resolution
// failure is non-fatal: the raw link is hashed instead.
func (r *IdentityResolver) CanonicalID(ctx context.Context, link string) (id, finalURL string) {
	finalURL = link
	if r.resolver != nil {
		resolved, err := r.resolver.Resolve(ctx, link)
		if err != nil || resolved == "" {
			if r.logger != nil {
				r.logger.Warn("final url resolution failed, using raw link", "link", link, "error", err)
			}
		} else {
			finalURL = resolved
		}
	}
	return HashURL(finalURL), finalURL
}

// HashURL renders the SHA-256 digest of a URL as the hex storage key.
func HashURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
