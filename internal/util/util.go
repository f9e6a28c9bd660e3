package util

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultPerPage is the page size used when none is requested.
	DefaultPerPage = 20
	// MaxPerPage caps the page size a client may request.
	MaxPerPage = 100
)

// Pagination is a normalized 1-based page request.
type Pagination struct {
	Page    int
	PerPage int
}

// NewPagination clamps page to >= 1 and perPage to [1, MaxPerPage],
// substituting DefaultPerPage for a missing size.
func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	return Pagination{Page: page, PerPage: min(perPage, MaxPerPage)}
}

// ParsePagination reads page and per_page query values. Unparseable values
// fall back to the defaults.
func ParsePagination(page, perPage string) Pagination {
	p, _ := strconv.Atoi(page)
	pp, _ := strconv.Atoi(perPage)

	return NewPagination(p, pp)
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the number of rows to read.
func (p Pagination) Limit() int {
	return p.PerPage
}

// PageMeta describes a page of a listing in API responses.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Meta builds the response metadata for a listing with total rows.
func (p Pagination) Meta(total int64) *PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}

	return &PageMeta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
