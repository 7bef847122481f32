// Package pagination implements the list contract shared by every paged
// read path: skip/limit windowing, free-text search, declared-field sorting
// and a total count independent of the requested window.
package pagination

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is applied when a request does not set a page size.
	DefaultLimit = 25
	// MaxLimit clamps the page size upper bound.
	MaxLimit = 100
)

// SortField is one field of a sort order, most significant first.
type SortField struct {
	Field string
	Desc  bool
}

// Request carries the pagination parameters of a list call.
type Request struct {
	Skip   int
	Limit  int
	Search string
	Sort   []SortField
}

// Page is one window of a list result together with the total count and the
// echoed request parameters.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	Request    Request
}

// Normalize clamps the window to sane bounds.
func (r Request) Normalize() Request {
	if r.Skip < 0 {
		r.Skip = 0
	}

	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}

	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}

	return r
}

// ParseSort decodes a "field:asc,other:desc" query value. Fields without a
// direction sort ascending; unknown fields are filtered later against the
// sortable whitelist.
func ParseSort(raw string) []SortField {
	if raw == "" {
		return nil
	}

	var sort []SortField

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, direction, _ := strings.Cut(part, ":")

		sort = append(sort, SortField{
			Field: field,
			Desc:  strings.EqualFold(direction, "desc"),
		})
	}

	return sort
}

// Find runs the paged query. The caller hands in a query with model and
// filters (including search) already applied; sortable maps exposed sort
// field names to database columns and acts as a whitelist, so a sort request
// can never inject arbitrary SQL.
func Find[T any](query *gorm.DB, req Request, sortable map[string]string) (Page[T], error) {
	req = req.Normalize()

	page := Page[T]{Request: req}

	if err := query.Count(&page.TotalCount).Error; err != nil {
		return page, err
	}

	for _, sf := range req.Sort {
		column, ok := sortable[sf.Field]
		if !ok {
			continue
		}

		if sf.Desc {
			column += " DESC"
		}

		query = query.Order(column)
	}

	if err := query.Offset(req.Skip).Limit(req.Limit).Find(&page.Items).Error; err != nil {
		return page, err
	}

	return page, nil
}
