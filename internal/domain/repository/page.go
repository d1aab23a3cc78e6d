// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

// SortDirection is the ordering applied to a paginated listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest carries pagination and ordering parameters for listing queries.
type PageRequest struct {
	Page      int           // 1-based page number.
	PageSize  int           // Items per page.
	SortBy    string        // Column to sort by; callers whitelist allowed keys.
	Direction SortDirection // Sort direction, defaults to descending.
}

// Normalize clamps the request into valid bounds so that an out-of-range
// request degrades to sane defaults instead of failing.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	if p.Direction != SortAsc {
		p.Direction = SortDesc
	}

	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of a listing plus the exact total count. A page past the
// end of the result set has an empty Items slice and an accurate Total.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
