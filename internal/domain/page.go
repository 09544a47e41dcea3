package domain

// DefaultPageLimit is the page size used by list endpoints when the client
// does not send ?limit=.
const DefaultPageLimit = 20

// MaxPageLimit caps ?limit= to prevent runaway queries.
const MaxPageLimit = 100

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is clamped to [1, MaxPageLimit] by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// A nil or non-positive page falls back to 1. A nil limit falls back to
// defaultLimit; any supplied limit is clamped to [1, MaxPageLimit].
func NewPaginationParams(page, limit *int, defaultLimit int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: clampLimit(defaultLimit)}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil {
		p.Limit = clampLimit(*limit)
	}
	return p
}

func clampLimit(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxPageLimit:
		return MaxPageLimit
	}
	return n
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the "pagination" object returned alongside every list response.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewPageMeta computes the pagination envelope for a page of a result set
// containing total rows. HasMore is true iff offset+limit < total.
func NewPageMeta(p PaginationParams, total int64) PageMeta {
	limit := int64(p.Limit)
	if limit < 1 {
		limit = 1
	}
	return PageMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		HasMore:    int64(p.Offset())+limit < total,
	}
}

// Page is one page of results plus the total row count across all pages.
type Page[T any] struct {
	Items []T
	Total int64
}
