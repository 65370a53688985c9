package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"library-catalog/internal/domains/book/model"
)

type mockService struct {
	ListFunc               func(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*model.BookDetail, error)
	CreateFunc             func(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	UpdateFunc             func(ctx context.Context, id uuid.UUID, req *model.CreateBookRequest) (*model.Book, error)
	UpdateStockFunc        func(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error)
	UpdateRatingFunc       func(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	ListByAuthorFunc       func(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	ListByCategoryFunc     func(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error)
	StatsOverviewFunc      func(ctx context.Context) (*model.StatsOverview, error)
	TopRatedByCategoryFunc func(ctx context.Context) ([]model.CategoryGroup, error)
}

func (m *mockService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockService) Update(ctx context.Context, id uuid.UUID, req *model.CreateBookRequest) (*model.Book, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockService) UpdateStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Book, error) {
	return m.UpdateStockFunc(ctx, id, inStock)
}

func (m *mockService) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) (*model.Book, error) {
	return m.UpdateRatingFunc(ctx, id, rating)
}

func (m *mockService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockService) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListByAuthorFunc(ctx, authorID, filter)
}

func (m *mockService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
	return m.ListByCategoryFunc(ctx, categoryID, filter)
}

func (m *mockService) StatsOverview(ctx context.Context) (*model.StatsOverview, error) {
	return m.StatsOverviewFunc(ctx)
}

func (m *mockService) TopRatedByCategory(ctx context.Context) ([]model.CategoryGroup, error) {
	return m.TopRatedByCategoryFunc(ctx)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc)

	r := gin.New()
	books := r.Group("/api/books")
	{
		books.GET("/stats/overview", h.StatsOverview)
		books.GET("/top-rated-by-category", h.TopRatedByCategory)
		books.GET("/author/:authorId", h.ListByAuthor)

		books.GET("", h.List)
		books.POST("", h.Create)
		books.GET("/:id", h.GetByID)
		books.PUT("/:id", h.Update)
		books.PATCH("/:id/stock", h.UpdateStock)
		books.PATCH("/:id/rating", h.UpdateRating)
		books.DELETE("/:id", h.Delete)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	m := make(map[string]interface{})
	if w.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	}
	return w, m
}

func TestListBooksHandler(t *testing.T) {
	svc := &mockService{
		ListFunc: func(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
			assert.Equal(t, "Fantasy", filter.Genre)
			assert.Equal(t, 2, filter.Page)
			return []model.Book{{Title: "The Tombs of Atuan"}}, 21, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books?genre=Fantasy&page=2&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Equal(t, float64(21), body["total"])
	assert.Equal(t, float64(1), body["count"])
}

func TestCreateBookHandler(t *testing.T) {
	t.Run("should pass: valid payload returns 201", func(t *testing.T) {
		svc := &mockService{
			CreateFunc: func(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
				return &model.Book{ID: uuid.New(), Title: req.Title}, nil
			},
		}

		w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/books", gin.H{
			"title":  "The Farthest Shore",
			"author": uuid.New().String(),
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Book created successfully", body["message"])

		data, ok := body["data"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "The Farthest Shore", data["title"])
	})

	t.Run("should fail: unknown author is 404", func(t *testing.T) {
		svc := &mockService{
			CreateFunc: func(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
				return nil, model.ErrAuthorNotFound
			},
		}

		w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/books", gin.H{
			"title":  "Orphaned",
			"author": uuid.New().String(),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "author not found", body["message"])
	})

	t.Run("should fail: duplicate isbn is 400", func(t *testing.T) {
		svc := &mockService{
			CreateFunc: func(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
				return nil, model.ErrISBNAlreadyExists
			},
		}

		w, body := doJSON(t, setupRouter(svc), http.MethodPost, "/api/books", gin.H{
			"title":  "Duplicate",
			"author": uuid.New().String(),
			"isbn":   "9780141354910",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("should fail: malformed json is 400", func(t *testing.T) {
		svc := &mockService{}
		r := setupRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBookHandler(t *testing.T) {
	t.Run("should pass: resolves references", func(t *testing.T) {
		id := uuid.New()
		svc := &mockService{
			GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*model.BookDetail, error) {
				assert.Equal(t, id, got)
				return &model.BookDetail{
					Book:       model.Book{ID: id, Title: "Tehanu"},
					AuthorName: "Ursula K. Le Guin",
				}, nil
			},
		}

		w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data, ok := body["data"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Ursula K. Le Guin", data["authorName"])
	})

	t.Run("should fail: invalid uuid is 400", func(t *testing.T) {
		svc := &mockService{}

		w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid UUID format", body["message"])
	})

	t.Run("should fail: missing book is 404", func(t *testing.T) {
		svc := &mockService{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.BookDetail, error) {
				return nil, model.ErrBookNotFound
			},
		}

		w, _ := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStockHandler(t *testing.T) {
	id := uuid.New()

	t.Run("should pass: toggles stock", func(t *testing.T) {
		svc := &mockService{
			UpdateStockFunc: func(ctx context.Context, got uuid.UUID, inStock bool) (*model.Book, error) {
				assert.Equal(t, id, got)
				assert.False(t, inStock)
				return &model.Book{ID: id, InStock: inStock}, nil
			},
		}

		w, _ := doJSON(t, setupRouter(svc), http.MethodPatch,
			fmt.Sprintf("/api/books/%s/stock", id), gin.H{"inStock": false})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should fail: missing inStock field", func(t *testing.T) {
		svc := &mockService{}

		w, _ := doJSON(t, setupRouter(svc), http.MethodPatch,
			fmt.Sprintf("/api/books/%s/stock", id), gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateRatingHandler(t *testing.T) {
	id := uuid.New()

	t.Run("should fail: out-of-range rating is 400", func(t *testing.T) {
		svc := &mockService{}

		w, body := doJSON(t, setupRouter(svc), http.MethodPatch,
			fmt.Sprintf("/api/books/%s/rating", id), gin.H{"rating": 7.5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["message"], "rating must be between 0 and 5")
	})

	t.Run("should pass: valid rating", func(t *testing.T) {
		svc := &mockService{
			UpdateRatingFunc: func(ctx context.Context, got uuid.UUID, rating float64) (*model.Book, error) {
				assert.InDelta(t, 4.5, rating, 1e-9)
				return &model.Book{ID: got, Rating: rating}, nil
			},
		}

		w, _ := doJSON(t, setupRouter(svc), http.MethodPatch,
			fmt.Sprintf("/api/books/%s/rating", id), gin.H{"rating": 4.5})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListByAuthorHandler(t *testing.T) {
	t.Run("should fail: unknown author is 404", func(t *testing.T) {
		svc := &mockService{
			ListByAuthorFunc: func(ctx context.Context, authorID uuid.UUID, filter model.BookFilter) ([]model.Book, int, error) {
				return nil, 0, model.ErrAuthorNotFound
			},
		}

		w, _ := doJSON(t, setupRouter(svc), http.MethodGet,
			"/api/books/author/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStatsOverviewHandler(t *testing.T) {
	svc := &mockService{
		StatsOverviewFunc: func(ctx context.Context) (*model.StatsOverview, error) {
			return &model.StatsOverview{
				TotalBooks:    12,
				InStock:       9,
				OutOfStock:    3,
				AverageRating: 3.87,
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books/stats/overview", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := body["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(12), data["totalBooks"])
	assert.Equal(t, float64(9), data["inStock"])
	assert.Equal(t, float64(3), data["outOfStock"])
	assert.InDelta(t, 3.87, data["averageRating"].(float64), 1e-9)
}

func TestTopRatedByCategoryHandler(t *testing.T) {
	svc := &mockService{
		TopRatedByCategoryFunc: func(ctx context.Context) ([]model.CategoryGroup, error) {
			return []model.CategoryGroup{
				{Name: "Fantasy"},
				{Name: "Uncategorized"},
			}, nil
		},
	}

	w, body := doJSON(t, setupRouter(svc), http.MethodGet, "/api/books/top-rated-by-category", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
}
