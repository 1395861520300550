// Package storage defines the persistence contract for the board. Two
// implementations exist: postgres for production and memory for tests and
// database-less startup.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
)

// ErrNotFound reports that the referenced record does not exist. For comment
// creation it also covers a missing parent prompt.
var ErrNotFound = errors.New("not found")

// PromptStorage covers persistence of models.Prompt.
type PromptStorage interface {
	// CreatePrompt inserts a fully-populated prompt (id, code, and
	// timestamps already assigned by the caller).
	CreatePrompt(ctx context.Context, p *models.Prompt) error
	// PromptByID returns the prompt including its modification code; the
	// service decides what reaches clients.
	PromptByID(ctx context.Context, id uuid.UUID) (*models.Prompt, error)
	// MutatePrompt loads the prompt, applies fn while holding the store's
	// row lock (or the memory store's mutex), and persists the result, so
	// an authorize-then-mutate sequence cannot interleave with another
	// writer. An error from fn aborts with no change and is returned
	// unwrapped.
	MutatePrompt(ctx context.Context, id uuid.UUID, fn func(*models.Prompt) error) (*models.Prompt, error)
	// DeletePrompt removes a prompt and all of its comments as one logical
	// operation.
	DeletePrompt(ctx context.Context, id uuid.UUID) error
	// ListPrompts returns one page of summaries plus the total match count.
	ListPrompts(ctx context.Context, opts models.ListOptions) ([]models.PromptSummary, int, error)
	// PromptSummariesByIDs returns summaries for the ids that exist; missing
	// ids are skipped, not errors.
	PromptSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PromptSummary, error)
	// RandomPrompt picks one prompt uniformly; ErrNotFound when empty.
	RandomPrompt(ctx context.Context) (*models.Prompt, error)
	// DistinctTags returns all distinct tag values verbatim, sorted
	// lexicographically. Casing variants are separate entries.
	DistinctTags(ctx context.Context) ([]string, error)
	// CountPrompts returns the total number of prompts.
	CountPrompts(ctx context.Context) (int, error)
}

// CommentStorage covers persistence of models.Comment.
type CommentStorage interface {
	// CreateComment inserts a comment. The parent-existence check is atomic
	// with the insert; a missing parent yields ErrNotFound.
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	// MutateComment is the comment counterpart of MutatePrompt.
	MutateComment(ctx context.Context, id uuid.UUID, fn func(*models.Comment) error) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	// ListComments returns one newest-first page of a prompt's comments plus
	// the prompt's total comment count.
	ListComments(ctx context.Context, promptID uuid.UUID, offset, limit int) ([]models.Comment, int, error)
	// CountComments returns the total number of comments across all prompts.
	CountComments(ctx context.Context) (int, error)
}

// Storage is the full persistence contract consumed by the board service.
type Storage interface {
	PromptStorage
	CommentStorage
	Close()
}
