package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the payload, runs the referential checks and persists
// the book. The author (and category, when present) must exist before the
// write; this is check-then-act against the store and is not atomic with
// the insert.
func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	if req.ISBN != nil {
		exists, err := s.repo.ISBNExists(ctx, *req.ISBN, nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	b := bookFromRequest(req)

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update is a full replacement with the same existence checks as Create.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	if req.ISBN != nil {
		exists, err := s.repo.ISBNExists(ctx, *req.ISBN, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	b := bookFromRequest(req)
	b.ID = id

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *bookService) UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error) {
	return s.repo.UpdateStock(ctx, id, inStock)
}

// UpdateRating rejects values outside [0,5] without touching the store.
func (s *bookService) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
	if rating < 0 || rating > 5 {
		return nil, model.ErrInvalidRating
	}
	return s.repo.UpdateRating(ctx, id, rating)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	exists, err := s.repo.AuthorExists(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, model.ErrAuthorNotFound
	}
	return s.repo.ListByAuthor(ctx, authorID, filter)
}

func (s *bookService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, model.ErrCategoryNotFound
	}
	return s.repo.ListByCategory(ctx, categoryID, filter)
}

func (s *bookService) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	return s.repo.StatsOverview(ctx)
}

func (s *bookService) TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error) {
	return s.repo.TopRatedByCategory(ctx)
}

// checkReferences verifies the author and, when present, the category exist.
func (s *bookService) checkReferences(ctx context.Context, req *model.CreateBookRequest) error {
	exists, err := s.repo.AuthorExists(ctx, req.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to verify author: %w", err)
	}
	if !exists {
		return model.ErrAuthorNotFound
	}

	if req.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to verify category: %w", err)
		}
		if !exists {
			return model.ErrCategoryNotFound
		}
	}

	return nil
}

// bookFromRequest applies the schema defaults.
func bookFromRequest(req *model.CreateBookRequest) *model.Book {
	b := &model.Book{
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		CategoryID:    req.CategoryID,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate,
		Publisher:     req.Publisher,
		Pages:         req.Pages,
		Genre:         req.Genre,
		Description:   req.Description,
		Language:      req.Language,
		Price:         req.Price,
		InStock:       true,
		Rating:        0,
	}

	if b.Genre == "" {
		b.Genre = model.DefaultGenre
	}
	if b.Language == "" {
		b.Language = model.DefaultLanguage
	}
	if req.InStock != nil {
		b.InStock = *req.InStock
	}
	if req.Rating != nil {
		b.Rating = *req.Rating
	}

	return b
}
