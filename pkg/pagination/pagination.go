package pagination

import (
	"net/url"
	"strconv"
)

// Params selects one page of a list. A zero PageSize means no paging and
// the whole list is returned as page one.
type Params struct {
	Page     int
	PageSize int
}

// FromQuery reads page and pageSize query parameters. Absent or invalid
// values fall back to no paging; a page below one is clamped to one.
func FromQuery(q url.Values) Params {
	p := Params{Page: 1}

	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		p.PageSize = size
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		p.Page = page
	}

	return p
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices one page out of items. Pages past the end come back
// empty rather than erroring.
func Paginate[T any](items []T, p Params) ([]T, Meta) {
	total := len(items)

	if p.PageSize == 0 {
		return items, Meta{Page: 1, PageSize: total, TotalItems: total, TotalPages: 1}
	}

	meta := Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: total,
		TotalPages: (total + p.PageSize - 1) / p.PageSize,
	}

	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return []T{}, meta
	}

	end := start + p.PageSize
	if end > total {
		end = total
	}

	return items[start:end], meta
}
