package model

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrISBNAlreadyExists = errors.New("a book with this ISBN already exists")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
)
