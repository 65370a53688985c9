package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the data-access contract for books,
// including the aggregate views.
type RepositoryInterface interface {
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)

	AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error)
	ISBNExists(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error)

	StatsOverview(ctx context.Context) (*model.StatsOverview, error)
	TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error)
}
