package model

import (
	"errors"
	"fmt"
)

var ErrAuthorNotFound = errors.New("author not found")

// AuthorHasBooksError blocks author deletion while books still reference
// the author. The count is re-read at delete time, never cached.
type AuthorHasBooksError struct {
	Count int
}

func (e *AuthorHasBooksError) Error() string {
	return fmt.Sprintf("cannot delete author with %d associated books", e.Count)
}
