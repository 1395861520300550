// Package tags is the single source of truth for tag list validation. Both
// the request boundary and the persistence path go through Validate, so the
// rules cannot drift apart.
package tags

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTags is the most tags a single prompt may carry.
	MaxTags = 10
	// MaxTagLength is the per-tag character ceiling after trimming.
	MaxTagLength = 30
)

var (
	ErrTooManyTags     = errors.New("maximum of 10 tags allowed")
	ErrTagTooLong      = errors.New("tag exceeds 30 characters")
	ErrTagEmpty        = errors.New("tag is empty")
	ErrTagInvalidChars = errors.New("tag may only contain letters, numbers, and hyphens")
	ErrDuplicateTag    = errors.New("duplicate tag (case-insensitive)")
)

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Validate checks a candidate tag list and returns the cleaned copy.
//
// Each tag is trimmed of surrounding whitespace; beyond that nothing is
// corrected — a tag with invalid characters is rejected, not repaired, and a
// case-insensitive duplicate is a hard error, not a silent dedup. Surviving
// tags keep their input order and original casing. A nil or empty input is
// valid and yields an empty list.
func Validate(in []string) ([]string, error) {
	if len(in) == 0 {
		return []string{}, nil
	}
	if len(in) > MaxTags {
		return nil, ErrTooManyTags
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			return nil, ErrTagEmpty
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, fmt.Errorf("tag %q: %w", tag, ErrTagTooLong)
		}
		if !tagPattern.MatchString(tag) {
			return nil, fmt.Errorf("tag %q: %w", tag, ErrTagInvalidChars)
		}
		folded := strings.ToLower(tag)
		if _, dup := seen[folded]; dup {
			return nil, fmt.Errorf("tag %q: %w", tag, ErrDuplicateTag)
		}
		seen[folded] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}
