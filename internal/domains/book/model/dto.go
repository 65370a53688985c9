package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var isbnPattern = regexp.MustCompile(`^(\d{10}|\d{13})$`)

// CreateBookRequest carries the payload for POST /books.
// PUT /books/:id reuses the same shape (full update).
type CreateBookRequest struct {
	Title         string           `json:"title"`
	AuthorID      uuid.UUID        `json:"author"`
	CategoryID    *uuid.UUID       `json:"category,omitempty"`
	ISBN          *string          `json:"isbn,omitempty"`
	PublishedDate *time.Time       `json:"publishedDate,omitempty"`
	Publisher     *string          `json:"publisher,omitempty"`
	Pages         *int             `json:"pages,omitempty"`
	Genre         string           `json:"genre,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Language      string           `json:"language,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	InStock       *bool            `json:"inStock,omitempty"`
	Rating        *float64         `json:"rating,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.AuthorID,
			validation.By(nonNilUUID),
		),
		validation.Field(&r.ISBN,
			validation.Match(isbnPattern).Error("isbn must be exactly 10 or 13 digits"),
		),
		validation.Field(&r.Pages,
			validation.By(atLeastOnePage),
		),
		validation.Field(&r.Genre,
			validation.By(validGenre),
		),
		validation.Field(&r.Price,
			validation.By(nonNegativePrice),
		),
		validation.Field(&r.Rating,
			validation.Min(0.0).Error("rating must be between 0 and 5"),
			validation.Max(5.0).Error("rating must be between 0 and 5"),
		),
	)
}

// UpdateStockRequest carries PATCH /books/:id/stock.
type UpdateStockRequest struct {
	InStock *bool `json:"inStock"`
}

func (r UpdateStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.InStock, validation.NotNil.Error("inStock is required")),
	)
}

// UpdateRatingRequest carries PATCH /books/:id/rating.
type UpdateRatingRequest struct {
	Rating *float64 `json:"rating"`
}

func (r UpdateRatingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.NotNil.Error("rating is required"),
			validation.Min(0.0).Error("rating must be between 0 and 5"),
			validation.Max(5.0).Error("rating must be between 0 and 5"),
		),
	)
}

func validGenre(value interface{}) error {
	g, _ := value.(string)
	if g == "" {
		return nil // defaults to Other
	}
	if !IsValidGenre(g) {
		return validation.NewError("validation_genre", "genre is not a recognized value")
	}
	return nil
}

// atLeastOnePage replaces a threshold rule because those treat zero as
// empty and skip it.
func atLeastOnePage(value interface{}) error {
	p, _ := value.(*int)
	if p != nil && *p < 1 {
		return validation.NewError("validation_pages", "pages must be at least 1")
	}
	return nil
}

func nonNegativePrice(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p != nil && p.IsNegative() {
		return validation.NewError("validation_price", "price must be no less than 0")
	}
	return nil
}

func nonNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_uuid", "author is required")
	}
	return nil
}
