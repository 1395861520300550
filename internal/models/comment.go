package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one Prompt and is removed with it. The same
// modification-code rules as Prompt apply.
type Comment struct {
	ID               uuid.UUID `json:"id" db:"id"`
	PromptID         uuid.UUID `json:"prompt_id" db:"prompt_id"`
	Content          string    `json:"content" db:"content"`
	Username         string    `json:"username" db:"username"`
	ModificationCode string    `json:"modification_code,omitempty" db:"modification_code"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
