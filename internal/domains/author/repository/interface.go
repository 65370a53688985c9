package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

type RepositoryInterface interface {
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetWithBooks(ctx context.Context, id uuid.UUID) (*model.AuthorWithBooks, error)
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CountBooks(ctx context.Context, authorID uuid.UUID) (int, error)
	Search(ctx context.Context, query, nationality string, limit int) ([]model.Author, error)
	Nationalities(ctx context.Context) ([]model.NationalityCount, error)

	TopByBooks(ctx context.Context, limit int) ([]model.TopAuthor, error)
	TopByRating(ctx context.Context, limit, minBooks int) ([]model.TopAuthor, error)
	Stats(ctx context.Context, id uuid.UUID) (*model.AuthorStats, error)
}
