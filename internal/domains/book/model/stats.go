package model

import "github.com/google/uuid"

// Aggregate view DTOs. All of these are recomputed on every request;
// none of them are cached.

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	Name       string     `json:"name"`
	Count      int        `json:"count"`
}

type TopRatedBook struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Rating     float64   `json:"rating"`
	AuthorName string    `json:"authorName"`
}

// StatsOverview is the GET /books/stats/overview payload.
type StatsOverview struct {
	TotalBooks    int             `json:"totalBooks"`
	InStock       int             `json:"inStock"`
	OutOfStock    int             `json:"outOfStock"`
	AverageRating float64         `json:"averageRating"`
	Genres        []GenreCount    `json:"genres"`
	Categories    []CategoryCount `json:"categories"`
	TopRated      []TopRatedBook  `json:"topRated"`
}

// RatedBook is a member of a top-rated-by-category group.
type RatedBook struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Rating            float64   `json:"rating"`
	AuthorName        string    `json:"authorName"`
	AuthorNationality *string   `json:"authorNationality,omitempty"`
}

// CategoryGroup is one group of the top-rated-by-category view. Books with
// no category fall into a synthetic "Uncategorized" group.
type CategoryGroup struct {
	CategoryID *uuid.UUID  `json:"categoryId,omitempty"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Books      []RatedBook `json:"books"`
}
