package ports

import (
	"context"

	"github.com/osero2000/coddee-news-app/internal/domain"
)

// FeedFetcher pulls and parses one RSS feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.RawItem, error)
}

// LinkResolver follows an aggregator link's redirect chain to the final
// article URL.
type LinkResolver interface {
	Resolve(ctx context.Context, link string) (string, error)
}

// TextGenerator invokes the external generative-language API. The returned
// text carries no schema guarantees; callers must parse defensively.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ArticleStore is the document collection keyed by canonical id.
type ArticleStore interface {
	// FindByLink returns existing records sharing the given original link.
	FindByLink(ctx context.Context, link string) ([]domain.StoredRecord, error)
	// Commit applies the whole batch atomically. An empty batch is a no-op
	// and must not touch the network.
	Commit(ctx context.Context, batch *domain.WriteBatch) error
}
