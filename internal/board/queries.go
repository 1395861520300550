package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
)

// ListPromptsQuery is the raw list request as the transport hands it over.
type ListPromptsQuery struct {
	// Search matches case-insensitively against title OR content.
	Search string
	// Tags is the raw comma-separated filter; a prompt matches when its
	// tag set overlaps the filter set (logical OR, not contains-all).
	Tags string
	// Sort is the raw sort key; unknown values fall back to newest-updated
	// first.
	Sort string
	// Page is 1-based; Limit overrides the default page size, bounded by
	// the configured maximum.
	Page  int
	Limit int
}

// ListPrompts returns one page of prompt summaries with derived comment
// counts.
func (s *Service) ListPrompts(ctx context.Context, q ListPromptsQuery) (*models.Page[models.PromptSummary], error) {
	opts := models.ListOptions{
		Search: strings.TrimSpace(q.Search),
		Tags:   splitTagFilter(q.Tags),
		Sort:   models.ParseSortKey(q.Sort),
		Page:   normalizePage(q.Page),
		Limit:  s.normalizeLimit(q.Limit),
	}
	summaries, total, err := s.store.ListPrompts(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return models.NewPage(summaries, total, opts.Page, opts.Limit), nil
}

// splitTagFilter parses "a, b ,c" into ["a","b","c"], dropping empty
// segments.
func splitTagFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// BatchGetPrompts resolves raw id strings to summaries. Entries that do not
// parse as UUIDs are skipped silently, as are ids with no record; an empty
// input yields an empty result, never an error.
func (s *Service) BatchGetPrompts(ctx context.Context, rawIDs []string) ([]models.PromptSummary, error) {
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	summaries, err := s.store.PromptSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch get prompts: %w", err)
	}
	return summaries, nil
}

// ListTags returns every distinct tag in use, verbatim (no case folding:
// "API" and "api" are separate entries), sorted lexicographically.
func (s *Service) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.store.DistinctTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
