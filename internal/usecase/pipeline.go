package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/osero2000/coddee-news-app/internal/domain"
	"github.com/osero2000/coddee-news-app/internal/ports"
)

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Fetcher   ports.FeedFetcher
	Resolver  ports.LinkResolver
	Generator ports.TextGenerator
	Store     ports.ArticleStore

	Feeds           []domain.FeedSpec
	AllowedTags     []string
	FailureSuffix   string
	FallbackSummary string
	FeedPause       time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// Pipeline implements one ingestion run: fetch every configured feed in
// order, deduplicate and summarize its items, and commit one atomic batch.
type Pipeline struct {
	fetcher    ports.FeedFetcher
	store      ports.ArticleStore
	identity   *IdentityResolver
	summarizer *Summarizer

	feeds     []domain.FeedSpec
	feedPause time.Duration

	logger *slog.Logger
	now    func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	var summarizer *Summarizer
	if deps.Generator != nil {
		summarizer = NewSummarizer(deps.Generator, deps.AllowedTags, deps.FailureSuffix, deps.FallbackSummary, logger)
	}

	return &Pipeline{
		fetcher:    deps.Fetcher,
		store:      deps.Store,
		identity:   NewIdentityResolver(deps.Resolver, logger),
		summarizer: summarizer,
		feeds:      deps.Feeds,
		feedPause:  deps.FeedPause,
		logger:     logger,
		now:        now,
	}
}

// Run processes all configured feeds once and returns the number of staged
// articles. Feed and item failures are isolated; only a missing summarizer
// or a failed final commit abort the run.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	if p.summarizer == nil {
		return 0, fmt.Errorf("summarizer is not configured (missing API key)")
	}
	if p.fetcher == nil || p.store == nil {
		return 0, fmt.Errorf("pipeline is not fully wired")
	}

	batchID := p.now().Unix()
	deduper := NewTitleDeduper()
	batch := &domain.WriteBatch{}
	staged := 0

	for i, feed := range p.feeds {
		p.logger.Info("collecting feed", "country", feed.CountryName, "region", feed.Region)

		items, err := p.fetcher.Fetch(ctx, feed.URL)
		if err != nil {
			p.logger.Error("feed fetch failed, skipping feed", "country", feed.CountryName, "error", err)
			continue
		}

		if feed.MaxArticles > 0 && len(items) > feed.MaxArticles {
			items = items[:feed.MaxArticles]
		}

		for seq, item := range items {
			result := p.processItem(ctx, feed, item, seq, batchID, deduper, batch)
			switch result.Status {
			case domain.ItemStaged:
				staged++
			case domain.ItemDuplicate:
				p.logger.Info("skipping near-duplicate title", "title", item.Title)
			case domain.ItemFailed:
				p.logger.Error("item processing failed, skipping item", "title", item.Title, "error", result.Err)
			}
		}

		// Courtesy pause between feed hosts.
		if p.feedPause > 0 && i < len(p.feeds)-1 {
			time.Sleep(p.feedPause)
		}
	}

	if staged > 0 {
		p.logger.Info("committing batch", "staged", staged, "batch_id", batchID)
		if err := p.store.Commit(ctx, batch); err != nil {
			return 0, fmt.Errorf("commit batch: %w", err)
		}
	}

	return staged, nil
}

// processItem walks one entry through dedup, identity resolution, legacy
// cleanup, summarization and staging. The caller advances the sequence
// counter unconditionally by passing the item's position.
func (p *Pipeline) processItem(ctx context.Context, feed domain.FeedSpec, item domain.RawItem, seq int, batchID int64, deduper *TitleDeduper, batch *domain.WriteBatch) domain.ItemResult {
	if deduper.IsDuplicate(item.Title) {
		return domain.ItemResult{Status: domain.ItemDuplicate}
	}

	id, finalURL := p.identity.CanonicalID(ctx, item.Link)

	if err := p.reconcileLegacy(ctx, item.Link, batch); err != nil {
		return domain.ItemResult{Status: domain.ItemFailed, Err: err}
	}

	summary := p.summarizer.Summarize(ctx, feed.Prompt, item.Title, item.Link, item.Description)

	publishedAt := item.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = p.now().UTC()
	}

	article := domain.ProcessedArticle{
		ID:          id,
		Title:       summary.Title,
		Link:        item.Link,
		FinalURL:    finalURL,
		Summary:     summary.Summary,
		Tags:        summary.Tags,
		PublishedAt: publishedAt,
		Region:      feed.Region,
		RegionName:  feed.RegionName,
		CountryCode: feed.CountryCode,
		CountryName: feed.CountryName,
		BatchID:     batchID,
		SequenceID:  seq,
	}

	batch.Set(article)
	return domain.ItemResult{Status: domain.ItemStaged, Article: article}
}

// reconcileLegacy stages deletes for stored records that share the item's
// original link but were written under the old country-name scheme, where
// country_code held a display name instead of a two-letter code. Cleanup is
// opportunistic: only records resurfacing through normal ingestion are
// touched.
func (p *Pipeline) reconcileLegacy(ctx context.Context, link string, batch *domain.WriteBatch) error {
	records, err := p.store.FindByLink(ctx, link)
	if err != nil {
		return fmt.Errorf("query by link: %w", err)
	}

	for _, record := range records {
		if utf8.RuneCountInString(record.CountryCode) == 2 {
			continue
		}
		p.logger.Info("removing legacy record", "id", record.ID, "country_code", record.CountryCode)
		batch.Delete(record.ID)
	}
	return nil
}
