package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/osero2000/coddee-news-app/internal/ports"
)

const maxTags = 3

// SummaryResult is the always-usable outcome of one summarization call.
type SummaryResult struct {
	Title    string
	Summary  string
	Tags     []string
	Degraded bool
}

// Summarizer wraps the text-generation call and enforces the response
// contract. It never returns an error: any failure yields a degraded result
// with the configured fallback texts.
type Summarizer struct {
	generator       ports.TextGenerator
	allowed         map[string]struct{}
	failureSuffix   string
	fallbackSummary string
	logger          *slog.Logger
}

// NewSummarizer binds the generator, the allowed tag vocabulary and the
// degraded-article texts.
func NewSummarizer(generator ports.TextGenerator, allowedTags []string, failureSuffix, fallbackSummary string, logger *slog.Logger) *Summarizer {
	allowed := make(map[string]struct{}, len(allowedTags))
	for _, tag := range allowedTags {
		allowed[tag] = struct{}{}
	}
	return &Summarizer{
		generator:       generator,
		allowed:         allowed,
		failureSuffix:   failureSuffix,
		fallbackSummary: fallbackSummary,
		logger:          logger,
	}
}

type summaryPayload struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Summarize renders the prompt for one article and interprets the model
// output. Responses wrapped in markdown code fences are accepted; tags
// outside the vocabulary are dropped and at most three are kept.
func (s *Summarizer) Summarize(ctx context.Context, promptTemplate, title, link, description string) SummaryResult {
	prompt := strings.NewReplacer(
		"{title}", title,
		"{link}", link,
		"{description}", description,
	).Replace(promptTemplate)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("summary generation failed", "title", title, "error", err)
		}
		return s.degraded(title)
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		if s.logger != nil {
			s.logger.Warn("summary response is not valid JSON", "title", title, "error", err)
		}
		return s.degraded(title)
	}

	if payload.Summary == "" {
		if s.logger != nil {
			s.logger.Warn("summary response missing summary field", "title", title)
		}
		return s.degraded(title)
	}

	if payload.Title == "" {
		payload.Title = title
	}

	return SummaryResult{
		Title:   payload.Title,
		Summary: payload.Summary,
		Tags:    s.filterTags(payload.Tags),
	}
}

func (s *Summarizer) degraded(title string) SummaryResult {
	return SummaryResult{
		Title:    strings.TrimSpace(title + " " + s.failureSuffix),
		Summary:  s.fallbackSummary,
		Tags:     []string{},
		Degraded: true,
	}
}

func (s *Summarizer) filterTags(tags []string) []string {
	kept := make([]string, 0, maxTags)
	for _, tag := range tags {
		if _, ok := s.allowed[tag]; !ok {
			continue
		}
		kept = append(kept, tag)
		if len(kept) == maxTags {
			break
		}
	}
	return kept
}

// stripCodeFence removes leading/trailing markdown fence markers the model
// tends to wrap JSON answers in.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
