package models

import "strings"

// SortKey identifies a prompt list ordering.
type SortKey string

const (
	SortTitleAsc      SortKey = "title_asc"
	SortTitleDesc     SortKey = "title_desc"
	SortUpdatedAtAsc  SortKey = "updated_at_asc"
	SortUpdatedAtDesc SortKey = "updated_at_desc"
)

// ParseSortKey maps a client-supplied sort value to a SortKey. The key is
// matched case-insensitively; anything unrecognized falls back to
// SortUpdatedAtDesc rather than erroring.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitleAsc:
		return SortTitleAsc
	case SortTitleDesc:
		return SortTitleDesc
	case SortUpdatedAtAsc:
		return SortUpdatedAtAsc
	case SortUpdatedAtDesc:
		return SortUpdatedAtDesc
	default:
		return SortUpdatedAtDesc
	}
}

// ListOptions carries the normalized prompt list query. Tags match by
// overlap: a prompt qualifies if it shares at least one tag with the filter.
type ListOptions struct {
	Search string
	Tags   []string
	Sort   SortKey
	Page   int
	Limit  int
}

// Page is the list response envelope: total row count plus availability of
// adjacent pages.
type Page[T any] struct {
	Count    int  `json:"count"`
	Next     bool `json:"next"`
	Previous bool `json:"previous"`
	Results  []T  `json:"results"`
}

// NewPage builds the envelope for one page of results. page is 1-based.
func NewPage[T any](results []T, total, page, limit int) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{
		Count:    total,
		Next:     page*limit < total,
		Previous: page > 1,
		Results:  results,
	}
}
