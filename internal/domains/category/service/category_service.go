package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-catalog/internal/domains/category/model"
	"library-catalog/internal/domains/category/repository"
	"library-catalog/internal/shared/utils"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CreateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.RepositoryInterface
}

func NewCategoryService(repo repository.RepositoryInterface) ServiceInterface {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	return s.repo.Create(ctx, &model.Category{
		Name: name,
		Slug: utils.GenerateSlug(name),
	})
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	return s.repo.Update(ctx, &model.Category{
		ID:   id,
		Name: name,
		Slug: utils.GenerateSlug(name),
	})
}

// Delete refuses while books still reference the category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &model.CategoryHasBooksError{Count: count}
	}

	return s.repo.Delete(ctx, id)
}
