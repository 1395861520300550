// Package board implements the record store and query engine over prompts
// and comments: validation, the modification-code mutation protocol, soft
// capacity ceilings, and the list/filter semantics.
package board

import (
	"time"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/storage"
)

// Limits carries the tunable ceilings of the board.
type Limits struct {
	// MaxPrompts and MaxComments are soft row-count caps. The check is
	// read-then-insert, so two concurrent creates can overshoot by one;
	// that is accepted rather than serialized away.
	MaxPrompts  int
	MaxComments int
	// PageSize is the default page length; MaxPageSize bounds the
	// client-requested override.
	PageSize    int
	MaxPageSize int
}

// DefaultLimits mirror the reference deployment.
var DefaultLimits = Limits{
	MaxPrompts:  500,
	MaxComments: 500,
	PageSize:    10,
	MaxPageSize: 100,
}

// embeddedComments is the size of the comment window embedded in a prompt
// detail response.
const embeddedComments = 10

const maxUsernameLength = 50

// Service is request-scoped and stateless between requests; all waiting
// happens in the storage layer.
type Service struct {
	store     storage.Storage
	usernames *anon.Generator
	limits    Limits
	now       func() time.Time
}

// NewService wires a board over the given storage. A nil username generator
// falls back to the default word lists, and unset limits fall back to
// DefaultLimits field by field.
func NewService(store storage.Storage, usernames *anon.Generator, limits Limits) *Service {
	if usernames == nil {
		usernames = anon.NewGenerator(nil, nil)
	}
	if limits.MaxPrompts <= 0 {
		limits.MaxPrompts = DefaultLimits.MaxPrompts
	}
	if limits.MaxComments <= 0 {
		limits.MaxComments = DefaultLimits.MaxComments
	}
	if limits.PageSize <= 0 {
		limits.PageSize = DefaultLimits.PageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = DefaultLimits.MaxPageSize
	}
	return &Service{
		store:     store,
		usernames: usernames,
		limits:    limits,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// normalizeLimit clamps a client page-size override into [1, MaxPageSize],
// substituting the default when unset.
func (s *Service) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.limits.PageSize
	}
	if limit > s.limits.MaxPageSize {
		return s.limits.MaxPageSize
	}
	return limit
}

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
