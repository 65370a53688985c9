package model

import (
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateAuthorRequest carries POST /authors; PUT /authors/:id reuses it.
type CreateAuthorRequest struct {
	Name        string     `json:"name"`
	Biography   *string    `json:"biography,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Website     *string    `json:"website,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Email,
			is.Email.Error("invalid email format"),
		),
	)
}

// AuthorFilter is the parsed query-string state for author list endpoints.
type AuthorFilter struct {
	Nationality string
	Search      string
	SortBy      string
	Order       string
	Page        int
	Limit       int
}

func (f AuthorFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParseAuthorFilter translates recognized query parameters into an
// AuthorFilter; unrecognized keys are ignored, out-of-range page/limit
// values are clamped.
func ParseAuthorFilter(values url.Values) AuthorFilter {
	return AuthorFilter{
		Nationality: values.Get("nationality"),
		Search:      values.Get("search"),
		SortBy:      values.Get("sortBy"),
		Order:       values.Get("order"),
		Page:        clampPage(values.Get("page")),
		Limit:       clampLimit(values.Get("limit")),
	}
}

func clampPage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return defaultPage
	}
	return page
}

func clampLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// AuthorStats is the GET /authors/:id/stats payload.
type AuthorStats struct {
	AuthorID      uuid.UUID    `json:"authorId"`
	Name          string       `json:"name"`
	BookCount     int          `json:"bookCount"`
	AverageRating float64      `json:"averageRating"`
	TotalPages    int          `json:"totalPages"`
	InStockCount  int          `json:"inStockCount"`
	Genres        []GenreCount `json:"genres"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// TopAuthor is one row of the top-by-books / top-by-rating views.
type TopAuthor struct {
	AuthorID      uuid.UUID `json:"authorId"`
	Name          string    `json:"name"`
	Nationality   *string   `json:"nationality,omitempty"`
	BookCount     int       `json:"bookCount"`
	AverageRating float64   `json:"averageRating"`
	TotalPages    int       `json:"totalPages"`
}

type NationalityCount struct {
	Nationality string `json:"nationality"`
	Count       int    `json:"count"`
}
