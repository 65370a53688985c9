package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultGenre    = "Other"
	DefaultLanguage = "English"
)

// Genres is the fixed genre enumeration. Anything outside it is rejected.
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Fantasy",
	"Science Fiction",
	"Romance",
	"Thriller",
	"Biography",
	"History",
	"Other",
}

type Book struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	AuthorID      uuid.UUID        `json:"author" db:"author_id"`
	CategoryID    *uuid.UUID       `json:"category,omitempty" db:"category_id"`
	ISBN          *string          `json:"isbn,omitempty" db:"isbn"`
	PublishedDate *time.Time       `json:"publishedDate,omitempty" db:"published_date"`
	Publisher     *string          `json:"publisher,omitempty" db:"publisher"`
	Pages         *int             `json:"pages,omitempty" db:"pages"`
	Genre         string           `json:"genre" db:"genre"`
	Description   *string          `json:"description,omitempty" db:"description"`
	Language      string           `json:"language" db:"language"`
	Price         *decimal.Decimal `json:"price,omitempty" db:"price"`
	InStock       bool             `json:"inStock" db:"in_stock"`
	Rating        float64          `json:"rating" db:"rating"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// BookDetail is a Book with its references resolved for single-entity reads.
type BookDetail struct {
	Book
	AuthorName        string  `json:"authorName"`
	AuthorNationality *string `json:"authorNationality,omitempty"`
	CategoryName      *string `json:"categoryName,omitempty"`
	CategorySlug      *string `json:"categorySlug,omitempty"`
}

// IsValidGenre reports whether g belongs to the fixed enumeration.
func IsValidGenre(g string) bool {
	for _, genre := range Genres {
		if genre == g {
			return true
		}
	}
	return false
}
