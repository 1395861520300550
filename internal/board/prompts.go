package board

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/authz"
	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/sanitize"
	"github.com/promptboard/promptboard/internal/storage"
	"github.com/promptboard/promptboard/internal/tags"
)

const (
	maxTitleLength         = 150
	maxPromptContentLength = 15000
)

// CreatePromptInput is the caller-supplied part of a new prompt. Username is
// optional and settable at creation only.
type CreatePromptInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Username string   `json:"username"`
	Tags     []string `json:"tags"`
}

// UpdatePromptPatch is a partial update; nil fields are untouched. Username
// is carried so the decoder accepts it, but it is unconditionally discarded:
// the stored username never changes after creation.
type UpdatePromptPatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Username *string   `json:"username"`
	Tags     *[]string `json:"tags"`
}

// CreatePrompt validates everything up front (no partial writes), issues the
// anonymous identity and modification code, and persists. The returned
// record is the only place the code is ever exposed.
func (s *Service) CreatePrompt(ctx context.Context, in CreatePromptInput) (*models.Prompt, error) {
	title, err := cleanText("title", in.Title, maxTitleLength)
	if err != nil {
		return nil, err
	}
	content, err := cleanText("content", in.Content, maxPromptContentLength)
	if err != nil {
		return nil, err
	}
	username, err := validateUsername(in.Username)
	if err != nil {
		return nil, err
	}
	cleanTags, err := tags.Validate(in.Tags)
	if err != nil {
		return nil, invalid("tags", "%s", err.Error())
	}

	count, err := s.store.CountPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}
	if count >= s.limits.MaxPrompts {
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
	p := &models.Prompt{
		ID:               uuid.New(),
		Title:            title,
		Content:          content,
		Username:         username,
		Tags:             cleanTags,
		ModificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreatePrompt(ctx, p); err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}
	return p, nil
}

// GetPrompt returns a prompt with its newest comments embedded. The
// modification code is stripped from the prompt and every comment.
func (s *Service) GetPrompt(ctx context.Context, id uuid.UUID) (*models.PromptDetail, error) {
	p, err := s.store.PromptByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return s.promptDetail(ctx, p)
}

// RandomPrompt picks one prompt uniformly; ErrNotFound on an empty board.
func (s *Service) RandomPrompt(ctx context.Context) (*models.PromptDetail, error) {
	p, err := s.store.RandomPrompt(ctx)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return s.promptDetail(ctx, p)
}

func (s *Service) promptDetail(ctx context.Context, p *models.Prompt) (*models.PromptDetail, error) {
	comments, total, err := s.store.ListComments(ctx, p.ID, 0, embeddedComments)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	p.ModificationCode = ""
	for i := range comments {
		comments[i].ModificationCode = ""
	}
	return &models.PromptDetail{
		Prompt:   *p,
		Comments: comments,
		CommentPagination: models.CommentMeta{
			TotalCount: total,
			PageSize:   embeddedComments,
			HasMore:    total > embeddedComments,
		},
	}, nil
}

// UpdatePrompt authorizes and applies the patch inside the store's mutation
// lock, so concurrent writers to the same prompt serialize. Touched fields
// are re-validated through the same paths creation uses; a caller-supplied
// username is discarded before anything else happens.
func (s *Service) UpdatePrompt(ctx context.Context, id uuid.UUID, patch UpdatePromptPatch, suppliedCode string) (*models.PromptDetail, error) {
	patch.Username = nil // immutable after creation, silently dropped

	p, err := s.store.MutatePrompt(ctx, id, func(p *models.Prompt) error {
		if err := authz.Authorize(p.ModificationCode, suppliedCode); err != nil {
			return err
		}
		if patch.Title != nil {
			title, err := cleanText("title", *patch.Title, maxTitleLength)
			if err != nil {
				return err
			}
			p.Title = title
		}
		if patch.Content != nil {
			content, err := cleanText("content", *patch.Content, maxPromptContentLength)
			if err != nil {
				return err
			}
			p.Content = content
		}
		if patch.Tags != nil {
			cleanTags, err := tags.Validate(*patch.Tags)
			if err != nil {
				return invalid("tags", "%s", err.Error())
			}
			p.Tags = cleanTags
		}
		p.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return s.promptDetail(ctx, p)
}

// DeletePrompt authorizes, then removes the prompt and all of its comments.
func (s *Service) DeletePrompt(ctx context.Context, id uuid.UUID, suppliedCode string) error {
	p, err := s.store.PromptByID(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if err := authz.Authorize(p.ModificationCode, suppliedCode); err != nil {
		return err
	}
	if err := s.store.DeletePrompt(ctx, id); err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// cleanText strips HTML before any length or emptiness check, so a payload
// that is pure markup is rejected as empty rather than stored blank.
func cleanText(field, raw string, maxLen int) (string, error) {
	cleaned := sanitize.Strip(raw)
	if cleaned == "" {
		return "", invalid(field, "must not be empty after HTML stripping")
	}
	if utf8.RuneCountInString(cleaned) > maxLen {
		return "", invalid(field, "must be at most %d characters", maxLen)
	}
	return cleaned, nil
}

func validateUsername(username string) (string, error) {
	if len([]rune(username)) > maxUsernameLength {
		return "", invalid("username", "must be at most %d characters", maxUsernameLength)
	}
	return username, nil
}

func mapStorageErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
