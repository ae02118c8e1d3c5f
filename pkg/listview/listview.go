// Package listview implements the search, sort and paging rules shared by
// the list screens.
package listview

import (
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection falls back to ascending for anything but "desc".
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

type SortState struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Toggle flips the direction when column is already the sort column and
// otherwise switches to column ascending.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Direction == Asc {
			return SortState{Column: column, Direction: Desc}
		}
		return SortState{Column: column, Direction: Asc}
	}
	return SortState{Column: column, Direction: Asc}
}

// OrderClause renders the state as a SQL ORDER BY expression. Only columns
// present in allowed are used; allowed maps the public column name to the
// database column. An unknown column yields fallback.
func (s SortState) OrderClause(allowed map[string]string, fallback string) string {
	col, ok := allowed[s.Column]
	if !ok {
		return fallback
	}
	dir := "ASC"
	if s.Direction == Desc {
		dir = "DESC"
	}
	return col + " " + dir
}

// Filter returns the items for which any field contains query, compared
// case-insensitively. The input slice is never modified. An empty query
// returns a copy of all items.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q == "" || matches(fields(item), q) {
			out = append(out, item)
		}
	}
	return out
}

func matches(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into 1-based pages. Out of range pages are clamped.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = 20
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	slice := make([]T, end-start)
	copy(slice, items[start:end])
	return Page[T]{
		Items:      slice,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
