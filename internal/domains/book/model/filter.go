package model

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// BookFilter is the parsed query-string state for list endpoints:
// filter predicate, sort and pagination window.
type BookFilter struct {
	Genre      string
	CategoryID string
	AuthorID   string
	InStock    *bool
	Search     string
	MinRating  *float64
	MaxRating  *float64
	SortBy     string
	Order      string
	Page       int
	Limit      int
}

// Offset is the zero-based skip computed from the pagination window.
func (f BookFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ParseBookFilter translates recognized query parameters into a BookFilter.
// Unrecognized keys are ignored. Out-of-range page/limit values are clamped
// (page >= 1, 1 <= limit <= 100) rather than rejected.
func ParseBookFilter(values url.Values) BookFilter {
	f := BookFilter{
		Genre:      values.Get("genre"),
		CategoryID: values.Get("category"),
		Search:     values.Get("search"),
		SortBy:     values.Get("sortBy"),
		Order:      values.Get("order"),
		Page:       parsePage(values.Get("page")),
		Limit:      parseLimit(values.Get("limit")),
	}

	// inStock is boolean only for the literal strings "true"/"false".
	switch values.Get("inStock") {
	case "true":
		v := true
		f.InStock = &v
	case "false":
		v := false
		f.InStock = &v
	}

	if min, err := strconv.ParseFloat(values.Get("minRating"), 64); err == nil {
		f.MinRating = &min
	}
	if max, err := strconv.ParseFloat(values.Get("maxRating"), 64); err == nil {
		f.MaxRating = &max
	}

	return f
}

func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

func parseLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
