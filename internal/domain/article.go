package domain

import "time"

// FeedSpec describes one configured news feed with its region metadata and
// the prompt text already bound to that region's instructions.
type FeedSpec struct {
	Region      string
	RegionName  string
	CountryCode string
	CountryName string
	URL         string
	Prompt      string
	MaxArticles int
}

// RawItem is a single RSS entry as fetched, before any processing.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Published   string
	PublishedAt time.Time
}

// ProcessedArticle is the persisted article document. Field names follow the
// stored document schema; created_at is assigned server-side by the store.
type ProcessedArticle struct {
	ID          string    `json:"-"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	FinalURL    string    `json:"original_link"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
	Region      string    `json:"region"`
	RegionName  string    `json:"region_name"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	BatchID     int64     `json:"batch_id"`
	SequenceID  int       `json:"sequence_id"`
}

// StoredRecord is the slice of an existing document the pipeline needs when
// checking for records written under the old country-name identity scheme.
type StoredRecord struct {
	ID          string
	CountryCode string
}

// ItemStatus enumerates the outcome of processing one feed entry.
type ItemStatus string

const (
	ItemStaged    ItemStatus = "staged"
	ItemDuplicate ItemStatus = "duplicate"
	ItemFailed    ItemStatus = "failed"
)

// ItemResult is the per-item outcome consumed by the orchestrator. The
// per-feed sequence counter advances once per result regardless of status.
type ItemResult struct {
	Status  ItemStatus
	Article ProcessedArticle
	Err     error
}
