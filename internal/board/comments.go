package board

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/authz"
	"github.com/promptboard/promptboard/internal/models"
)

const maxCommentContentLength = 2000

// CreateCommentInput is the caller-supplied part of a new comment.
type CreateCommentInput struct {
	Content  string `json:"content"`
	Username string `json:"username"`
}

// UpdateCommentPatch is a partial comment update. As with prompts, a
// supplied username is discarded.
type UpdateCommentPatch struct {
	Content  *string `json:"content"`
	Username *string `json:"username"`
}

// CreateComment validates and inserts under an existing prompt. The parent
// is looked up before the capacity gate so a nonexistent prompt reports not
// found even on a full board; the insert itself still re-checks the parent
// atomically (storage enforces it via transaction or foreign key), so a
// concurrently deleted prompt cannot strand the comment.
func (s *Service) CreateComment(ctx context.Context, promptID uuid.UUID, in CreateCommentInput) (*models.Comment, error) {
	content, err := cleanText("content", in.Content, maxCommentContentLength)
	if err != nil {
		return nil, err
	}
	username, err := validateUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.PromptByID(ctx, promptID); err != nil {
		return nil, mapStorageErr(err)
	}

	count, err := s.store.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if count >= s.limits.MaxComments {
		return nil, ErrCapacityExceeded
	}

	if username == "" {
		username = s.usernames.NewUsername()
	}
	code, err := anon.NewModificationCode()
	if err != nil {
		return nil, fmt.Errorf("issue modification code: %w", err)
	}

	now := s.now()
	c := &models.Comment{
		ID:               uuid.New(),
		PromptID:         promptID,
		Content:          content,
		Username:         username,
		ModificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, mapStorageErr(err)
	}
	return c, nil
}

// ListComments pages a prompt's comments newest-first. A missing prompt is
// ErrNotFound, not an empty page.
func (s *Service) ListComments(ctx context.Context, promptID uuid.UUID, page, limit int) (*models.Page[models.Comment], error) {
	if _, err := s.store.PromptByID(ctx, promptID); err != nil {
		return nil, mapStorageErr(err)
	}
	page = normalizePage(page)
	limit = s.normalizeLimit(limit)

	comments, total, err := s.store.ListComments(ctx, promptID, (page-1)*limit, limit)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	for i := range comments {
		comments[i].ModificationCode = ""
	}
	return models.NewPage(comments, total, page, limit), nil
}

// GetComment returns one comment, code stripped.
func (s *Service) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, err := s.store.CommentByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	c.ModificationCode = ""
	return c, nil
}

// UpdateComment authorizes and patches inside the store's mutation lock,
// dropping any username from the patch and re-validating content.
func (s *Service) UpdateComment(ctx context.Context, id uuid.UUID, patch UpdateCommentPatch, suppliedCode string) (*models.Comment, error) {
	patch.Username = nil // immutable after creation, silently dropped

	c, err := s.store.MutateComment(ctx, id, func(c *models.Comment) error {
		if err := authz.Authorize(c.ModificationCode, suppliedCode); err != nil {
			return err
		}
		if patch.Content != nil {
			content, err := cleanText("content", *patch.Content, maxCommentContentLength)
			if err != nil {
				return err
			}
			c.Content = content
		}
		c.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}
	c.ModificationCode = ""
	return c, nil
}

// DeleteComment authorizes and removes one comment.
func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID, suppliedCode string) error {
	c, err := s.store.CommentByID(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if err := authz.Authorize(c.ModificationCode, suppliedCode); err != nil {
		return err
	}
	if err := s.store.DeleteComment(ctx, id); err != nil {
		return mapStorageErr(err)
	}
	return nil
}
