package domain

import (
	"math"
	"strings"
)

const (
	// DefaultPageNumber is the page used when none is requested. Pages are zero-based.
	DefaultPageNumber = 0
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 5
)

// PageRequest is an offset/limit window over an ordered result set
type PageRequest struct {
	Offset int
	Limit  int
}

// Paginate computes the window for a zero-based page number and a page size.
// A nil or negative page number means DefaultPageNumber; a nil or non-positive
// page size means DefaultPageSize. Offsets that would overflow saturate at
// math.MaxInt, which selects an empty page.
func Paginate(pageNumber, pageSize *int) PageRequest {
	page := DefaultPageNumber
	if pageNumber != nil && *pageNumber >= 0 {
		page = *pageNumber
	}
	limit := DefaultPageSize
	if pageSize != nil && *pageSize >= 1 {
		limit = *pageSize
	}
	if page > math.MaxInt/limit {
		return PageRequest{Offset: math.MaxInt, Limit: limit}
	}
	return PageRequest{Offset: page * limit, Limit: limit}
}

// Page is one window of results plus the size of the unpaged result set
type Page[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total"`
}

// SearchFilter is a case-insensitive substring match over one or more
// text fields, combined with OR. A blank query matches everything.
type SearchFilter struct {
	Query  string
	Fields []string
}

// NewSearchFilter trims the query and binds it to the given fields
func NewSearchFilter(query string, fields ...string) SearchFilter {
	return SearchFilter{Query: strings.TrimSpace(query), Fields: fields}
}

// IsBlank reports whether the filter lets every row pass
func (f SearchFilter) IsBlank() bool {
	return strings.TrimSpace(f.Query) == "" || len(f.Fields) == 0
}

// Match applies the filter to field values given in the same order as Fields.
func (f SearchFilter) Match(values ...string) bool {
	if f.IsBlank() {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// LikePattern returns the query as a SQL LIKE pattern with wildcards
// escaped, wrapped for substring matching.
func (f SearchFilter) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(f.Query)) + "%"
}
