package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a board entry. ModificationCode is the per-record write secret:
// it is populated only on the create response and stripped from every other
// read path before serialization.
type Prompt struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Content          string    `json:"content" db:"content"`
	Username         string    `json:"username" db:"username"`
	Tags             []string  `json:"tags" db:"tags"`
	ModificationCode string    `json:"modification_code,omitempty" db:"modification_code"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// PromptSummary is the list/batch representation. CommentCount is derived at
// query time; the modification code is never part of a summary.
type PromptSummary struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	Username     string    `json:"username" db:"username"`
	Tags         []string  `json:"tags" db:"tags"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PromptDetail embeds the newest comments alongside the prompt so a single
// fetch can render a thread head.
type PromptDetail struct {
	Prompt
	Comments          []Comment   `json:"comments"`
	CommentPagination CommentMeta `json:"comment_pagination"`
}

// CommentMeta summarizes the embedded comment window of a PromptDetail.
type CommentMeta struct {
	TotalCount int  `json:"total_count"`
	PageSize   int  `json:"page_size"`
	HasMore    bool `json:"has_more"`
}
