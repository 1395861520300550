// Package memory is an in-process implementation of the storage contract.
// It backs unit tests and lets the API start without a database, mirroring
// the postgres implementation's query semantics exactly.
package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/storage"
)

// Storage keeps all records in maps guarded by a single mutex. Writes hold
// the lock for the whole operation, which gives the same "authorize and
// mutate are not interleaved" guarantee a database transaction provides.
type Storage struct {
	mu       sync.RWMutex
	prompts  map[uuid.UUID]*models.Prompt
	comments map[uuid.UUID]*models.Comment
}

// New returns an empty in-memory store.
func New() *Storage {
	return &Storage{
		prompts:  make(map[uuid.UUID]*models.Prompt),
		comments: make(map[uuid.UUID]*models.Comment),
	}
}

// Close is a no-op; it exists to satisfy the contract.
func (s *Storage) Close() {}

func clonePrompt(p *models.Prompt) *models.Prompt {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}

func (s *Storage) CreatePrompt(_ context.Context, p *models.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts[p.ID] = clonePrompt(p)
	return nil
}

func (s *Storage) PromptByID(_ context.Context, id uuid.UUID) (*models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prompts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clonePrompt(p), nil
}

// MutatePrompt applies fn to a copy under the write lock and stores the
// result only when fn succeeds, so a failed authorization or validation
// leaves the record untouched.
func (s *Storage) MutatePrompt(_ context.Context, id uuid.UUID, fn func(*models.Prompt) error) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.prompts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	next := clonePrompt(cur)
	if err := fn(next); err != nil {
		return nil, err
	}
	s.prompts[id] = clonePrompt(next)
	return next, nil
}

func (s *Storage) DeletePrompt(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prompts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.prompts, id)
	for cid, c := range s.comments {
		if c.PromptID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Storage) ListPrompts(_ context.Context, opts models.ListOptions) ([]models.PromptSummary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		if matchesFilter(p, opts) {
			matched = append(matched, p)
		}
	}
	sortPrompts(matched, opts.Sort)

	total := len(matched)
	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	summaries := make([]models.PromptSummary, 0, end-start)
	for _, p := range matched[start:end] {
		summaries = append(summaries, s.summarize(p))
	}
	return summaries, total, nil
}

func matchesFilter(p *models.Prompt, opts models.ListOptions) bool {
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			return false
		}
	}
	if len(opts.Tags) > 0 && !overlaps(p.Tags, opts.Tags) {
		return false
	}
	return true
}

// overlaps reports whether the two tag sets share at least one element.
// Matching is exact, like the postgres && operator on text[].
func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func sortPrompts(ps []*models.Prompt, key models.SortKey) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		switch key {
		case models.SortTitleAsc:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta < tb
			}
		case models.SortTitleDesc:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta > tb
			}
		case models.SortUpdatedAtAsc:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		default:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		}
		return a.ID.String() < b.ID.String()
	})
}

func (s *Storage) summarize(p *models.Prompt) models.PromptSummary {
	count := 0
	for _, c := range s.comments {
		if c.PromptID == p.ID {
			count++
		}
	}
	return models.PromptSummary{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Username:     p.Username,
		Tags:         append([]string(nil), p.Tags...),
		CommentCount: count,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (s *Storage) PromptSummariesByIDs(_ context.Context, ids []uuid.UUID) ([]models.PromptSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := []models.PromptSummary{}
	for _, id := range ids {
		if p, ok := s.prompts[id]; ok {
			summaries = append(summaries, s.summarize(p))
		}
	}
	return summaries, nil
}

func (s *Storage) RandomPrompt(_ context.Context) (*models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.prompts) == 0 {
		return nil, storage.ErrNotFound
	}
	n := rand.IntN(len(s.prompts))
	for _, p := range s.prompts {
		if n == 0 {
			return clonePrompt(p), nil
		}
		n--
	}
	return nil, storage.ErrNotFound // unreachable
}

func (s *Storage) DistinctTags(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, p := range s.prompts {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *Storage) CountPrompts(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prompts), nil
}
