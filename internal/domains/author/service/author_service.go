package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
)

const (
	defaultTopLimit = 10
	defaultMinBooks = 1
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error) {
	return s.repo.List(ctx, filter)
}

// GetByID returns the author with its books populated.
func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithBooks, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetWithBooks(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, authorFromRequest(req))
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := authorFromRequest(req)
	a.ID = id

	return s.repo.Update(ctx, a)
}

// Delete refuses while books still reference the author. The count is
// re-read here rather than cached; the check and the delete are not
// atomic, which is an accepted race.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &model.AuthorHasBooksError{Count: count}
	}

	return s.repo.Delete(ctx, id)
}

func (s *authorService) Search(ctx context.Context, query, nationality string, limit int) ([]model.Author, error) {
	if limit < 1 {
		limit = defaultTopLimit
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.Search(ctx, query, nationality, limit)
}

func (s *authorService) Nationalities(ctx context.Context) ([]model.NationalityCount, error) {
	return s.repo.Nationalities(ctx)
}

func (s *authorService) ListByNationality(ctx context.Context, nationality string, filter model.AuthorFilter) ([]model.Author, int, error) {
	filter.Nationality = nationality
	return s.repo.List(ctx, filter)
}

func (s *authorService) TopByBooks(ctx context.Context, limit int) ([]model.TopAuthor, error) {
	if limit < 1 {
		limit = defaultTopLimit
	}
	return s.repo.TopByBooks(ctx, limit)
}

func (s *authorService) TopByRating(ctx context.Context, limit, minBooks int) ([]model.TopAuthor, error) {
	if limit < 1 {
		limit = defaultTopLimit
	}
	if minBooks < 1 {
		minBooks = defaultMinBooks
	}
	return s.repo.TopByRating(ctx, limit, minBooks)
}

func (s *authorService) Stats(ctx context.Context, id uuid.UUID) (*model.AuthorStats, error) {
	return s.repo.Stats(ctx, id)
}

func authorFromRequest(req *model.CreateAuthorRequest) *model.Author {
	a := &model.Author{
		Name:        strings.TrimSpace(req.Name),
		Biography:   req.Biography,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
		Website:     req.Website,
	}

	// Emails are stored lowercased.
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		a.Email = &email
	}

	return a
}
