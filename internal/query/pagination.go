package query

import "strconv"

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Limit  int
}

// ParsePage builds a Page from raw query parameters.  Missing or
// non-numeric values fall back to page 1 and limit 10; this never fails.
func ParsePage(pageStr, limitStr string) Page {
	p := Page{Number: defaultPage, Limit: defaultLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		p.Limit = n
	}
	return p
}

// Offset converts the 1-based page number to a row offset.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta derives response metadata from the pre-pagination total count.
// count 0 yields 0 total pages.
func NewMeta(count int64, p Page) Meta {
	m := Meta{Count: count, Page: p.Number, PerPage: p.Limit}
	if count > 0 && p.Limit > 0 {
		m.TotalPages = (count + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return m
}
