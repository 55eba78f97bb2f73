// Package query holds pagination and allow-listed sorting shared by list queries.
package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 15
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// Unpaged reports whether the caller asked for every row (exports).
func (f PageFilter) Unpaged() bool {
	return f.PageSize < 0
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// SortColumns maps public sort keys to SQL columns. Keys absent from the map are never
// interpolated into ORDER BY.
type SortColumns map[string]string

// OrderClause resolves f against the allow-list. Unknown keys fall back to fallback.
func (cols SortColumns) OrderClause(f SortFilter, fallback string) string {
	column, ok := cols[strings.ToLower(strings.TrimSpace(f.SortBy))]
	if !ok {
		return fallback
	}
	if f.IsDescending() {
		return column + " DESC"
	}
	return column + " ASC"
}

// Allowed reports whether key is a known sort key.
func (cols SortColumns) Allowed(key string) bool {
	_, ok := cols[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

type BaseFilter struct {
	PageFilter
	SortFilter
}
