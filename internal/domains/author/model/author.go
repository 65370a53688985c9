package model

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Biography   *string    `json:"biography,omitempty" db:"biography"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Nationality *string    `json:"nationality,omitempty" db:"nationality"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Website     *string    `json:"website,omitempty" db:"website"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// BookSummary is the per-book shape used when an author is read with
// its books populated.
type BookSummary struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Genre         string     `json:"genre"`
	Rating        float64    `json:"rating"`
	InStock       bool       `json:"inStock"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
}

// AuthorWithBooks is an Author with the referencing books resolved.
// The book set is virtual: computed on read, never stored.
type AuthorWithBooks struct {
	Author
	Books []BookSummary `json:"books"`
}
