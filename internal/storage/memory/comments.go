package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/storage"
)

func cloneComment(c *models.Comment) *models.Comment {
	cp := *c
	return &cp
}

// CreateComment checks the parent under the same lock that performs the
// insert, so a concurrent prompt delete cannot strand the comment.
func (s *Storage) CreateComment(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prompts[c.PromptID]; !ok {
		return storage.ErrNotFound
	}
	s.comments[c.ID] = cloneComment(c)
	return nil
}

func (s *Storage) CommentByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneComment(c), nil
}

// MutateComment mirrors MutatePrompt: the stored record changes only when fn
// succeeds.
func (s *Storage) MutateComment(_ context.Context, id uuid.UUID, fn func(*models.Comment) error) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	next := cloneComment(cur)
	if err := fn(next); err != nil {
		return nil, err
	}
	s.comments[id] = cloneComment(next)
	return next, nil
}

func (s *Storage) DeleteComment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *Storage) ListComments(_ context.Context, promptID uuid.UUID, offset, limit int) ([]models.Comment, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []*models.Comment{}
	for _, c := range s.comments {
		if c.PromptID == promptID {
			matched = append(matched, c)
		}
	}
	// Newest first, id as tiebreaker like the postgres ORDER BY.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]models.Comment, 0, end-offset)
	for _, c := range matched[offset:end] {
		page = append(page, *cloneComment(c))
	}
	return page, total, nil
}

func (s *Storage) CountComments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments), nil
}
