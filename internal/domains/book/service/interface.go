package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CreateBookRequest) (*model.Book, error)
	UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)

	StatsOverview(ctx context.Context) (*model.StatsOverview, error)
	TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error)
}
