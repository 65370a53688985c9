package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"library-catalog/internal/domains/book/model"
)

// mockRepository implements repository.RepositoryInterface with
// overridable functions per test.
type mockRepository struct {
	ListFunc               func(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)
	CreateFunc             func(ctx context.Context, b *model.Book) (*model.Book, error)
	UpdateFunc             func(ctx context.Context, b *model.Book) (*model.Book, error)
	UpdateStockFunc        func(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error)
	UpdateRatingFunc       func(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	ListByAuthorFunc       func(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	ListByCategoryFunc     func(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	AuthorExistsFunc       func(ctx context.Context, authorID uuid.UUID) (bool, error)
	CategoryExistsFunc     func(ctx context.Context, categoryID uuid.UUID) (bool, error)
	ISBNExistsFunc         func(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error)
	StatsOverviewFunc      func(ctx context.Context) (*model.StatsOverview, error)
	TopRatedByCategoryFunc func(ctx context.Context) ([]model.CategoryGroup, error)
}

func (m *mockRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	return m.CreateFunc(ctx, b)
}

func (m *mockRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	return m.UpdateFunc(ctx, b)
}

func (m *mockRepository) UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error) {
	return m.UpdateStockFunc(ctx, id, inStock)
}

func (m *mockRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
	return m.UpdateRatingFunc(ctx, id, rating)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListByAuthorFunc(ctx, authorID, filter)
}

func (m *mockRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListByCategoryFunc(ctx, categoryID, filter)
}

func (m *mockRepository) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	return m.AuthorExistsFunc(ctx, authorID)
}

func (m *mockRepository) CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	return m.CategoryExistsFunc(ctx, categoryID)
}

func (m *mockRepository) ISBNExists(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error) {
	return m.ISBNExistsFunc(ctx, isbn, excludeID)
}

func (m *mockRepository) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	return m.StatsOverviewFunc(ctx)
}

func (m *mockRepository) TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error) {
	return m.TopRatedByCategoryFunc(ctx)
}

func createRequest() *model.CreateBookRequest {
	return &model.CreateBookRequest{
		Title:    "A Wizard of Earthsea",
		AuthorID: uuid.New(),
	}
}

func TestBookServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("should pass: persists with defaults applied", func(t *testing.T) {
		var persisted *model.Book
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return true, nil
			},
			CreateFunc: func(ctx context.Context, b *model.Book) (*model.Book, error) {
				persisted = b
				b.ID = uuid.New()
				return b, nil
			},
		}

		svc := NewBookService(repo)
		book, err := svc.Create(ctx, createRequest())

		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, "Other", persisted.Genre)
		assert.Equal(t, "English", persisted.Language)
		assert.True(t, persisted.InStock)
		assert.Zero(t, persisted.Rating)
	})

	t.Run("should fail: invalid payload never reaches the store", func(t *testing.T) {
		repo := &mockRepository{
			CreateFunc: func(ctx context.Context, b *model.Book) (*model.Book, error) {
				t.Fatal("Create should not be called for an invalid payload")
				return nil, nil
			},
		}

		svc := NewBookService(repo)
		_, err := svc.Create(ctx, &model.CreateBookRequest{})

		assert.Error(t, err)
		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("should fail: unknown author", func(t *testing.T) {
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return false, nil
			},
		}

		svc := NewBookService(repo)
		_, err := svc.Create(ctx, createRequest())

		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})

	t.Run("should fail: unknown category", func(t *testing.T) {
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return true, nil
			},
			CategoryExistsFunc: func(ctx context.Context, categoryID uuid.UUID) (bool, error) {
				return false, nil
			},
		}

		svc := NewBookService(repo)
		req := createRequest()
		catID := uuid.New()
		req.CategoryID = &catID
		_, err := svc.Create(ctx, req)

		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	})

	t.Run("should fail: duplicate isbn", func(t *testing.T) {
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return true, nil
			},
			ISBNExistsFunc: func(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error) {
				assert.Equal(t, "9780141354910", isbn)
				assert.Nil(t, excludeID)
				return true, nil
			},
		}

		svc := NewBookService(repo)
		req := createRequest()
		isbn := "9780141354910"
		req.ISBN = &isbn
		_, err := svc.Create(ctx, req)

		assert.ErrorIs(t, err, model.ErrISBNAlreadyExists)
	})
}

func TestBookServiceUpdate(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()

	t.Run("should pass: isbn check excludes the book itself", func(t *testing.T) {
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return true, nil
			},
			ISBNExistsFunc: func(ctx context.Context, isbn string, excludeID *uuid.UUID) (bool, error) {
				if assert.NotNil(t, excludeID) {
					assert.Equal(t, bookID, *excludeID)
				}
				return false, nil
			},
			UpdateFunc: func(ctx context.Context, b *model.Book) (*model.Book, error) {
				assert.Equal(t, bookID, b.ID)
				return b, nil
			},
		}

		svc := NewBookService(repo)
		req := createRequest()
		isbn := "0141354917"
		req.ISBN = &isbn
		_, err := svc.Update(ctx, bookID, req)

		assert.NoError(t, err)
	})
}

func TestBookServiceUpdateRating(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail: rating outside bounds without store access", func(t *testing.T) {
		repo := &mockRepository{
			UpdateRatingFunc: func(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
				t.Fatal("store should not be touched for out-of-range ratings")
				return nil, nil
			},
		}

		svc := NewBookService(repo)
		_, err := svc.UpdateRating(ctx, uuid.New(), 5.1)
		assert.ErrorIs(t, err, model.ErrInvalidRating)

		_, err = svc.UpdateRating(ctx, uuid.New(), -0.1)
		assert.ErrorIs(t, err, model.ErrInvalidRating)
	})

	t.Run("should pass: boundary ratings", func(t *testing.T) {
		repo := &mockRepository{
			UpdateRatingFunc: func(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
				return &model.Book{ID: id, Rating: rating}, nil
			},
		}

		svc := NewBookService(repo)
		for _, r := range []float64{0, 5} {
			book, err := svc.UpdateRating(ctx, uuid.New(), r)
			assert.NoError(t, err)
			assert.Equal(t, r, book.Rating)
		}
	})
}

func TestBookServiceListByAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail: unknown author", func(t *testing.T) {
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
				return false, nil
			},
		}

		svc := NewBookService(repo)
		_, _, err := svc.ListByAuthor(ctx, uuid.New(), model.BookFilter{Page: 1, Limit: 10})

		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})

	t.Run("should pass: delegates to the store", func(t *testing.T) {
		authorID := uuid.New()
		repo := &mockRepository{
			AuthorExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return true, nil
			},
			ListByAuthorFunc: func(ctx context.Context, id uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
				assert.Equal(t, authorID, id)
				return []model.Book{{AuthorID: id}}, 1, nil
			},
		}

		svc := NewBookService(repo)
		books, total, err := svc.ListByAuthor(ctx, authorID, model.BookFilter{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, books, 1)
	})
}

func TestBookServiceGetByID(t *testing.T) {
	t.Run("should fail: nil id short-circuits", func(t *testing.T) {
		repo := &mockRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
				t.Fatal("store should not be queried for the nil id")
				return nil, nil
			},
		}

		svc := NewBookService(repo)
		_, err := svc.GetByID(context.Background(), uuid.Nil)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})
}

func TestBookServiceCreateStoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockRepository{
		AuthorExistsFunc: func(ctx context.Context, authorID uuid.UUID) (bool, error) {
			return true, nil
		},
		CreateFunc: func(ctx context.Context, b *model.Book) (*model.Book, error) {
			return nil, storeErr
		},
	}

	svc := NewBookService(repo)
	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, storeErr)
}
