package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// List handles GET /books with filtering, text search and pagination.
func (h *BookHandler) List(c *gin.Context) {
	filter := model.ParseBookFilter(c.Request.URL.Query())

	books, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.Paginated(c, books, total, filter.Page, filter.Limit, len(books))
}

// GetByID handles GET /books/:id with author and category resolved.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Book created successfully", book)
}

// Update handles PUT /books/:id (full update).
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book updated successfully", book)
}

// UpdateStock handles PATCH /books/:id/stock.
func (h *BookHandler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateStockRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.UpdateStock(c.Request.Context(), id, *req.InStock)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Stock status updated", book)
}

// UpdateRating handles PATCH /books/:id/rating.
func (h *BookHandler) UpdateRating(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateRatingRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.UpdateRating(c.Request.Context(), id, *req.Rating)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Rating updated", book)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book deleted successfully", nil)
}

// ListByAuthor handles GET /books/author/:authorId.
func (h *BookHandler) ListByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("authorId"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	filter := model.ParseBookFilter(c.Request.URL.Query())

	books, total, err := h.service.ListByAuthor(c.Request.Context(), authorID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Paginated(c, books, total, filter.Page, filter.Limit, len(books))
}

// ListByCategory handles GET /books/category/:categoryId.
func (h *BookHandler) ListByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return
	}

	filter := model.ParseBookFilter(c.Request.URL.Query())

	books, total, err := h.service.ListByCategory(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Paginated(c, books, total, filter.Page, filter.Limit, len(books))
}

// StatsOverview handles GET /books/stats/overview.
func (h *BookHandler) StatsOverview(c *gin.Context) {
	overview, err := h.service.StatsOverview(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// TopRatedByCategory handles GET /books/top-rated-by-category.
func (h *BookHandler) TopRatedByCategory(c *gin.Context) {
	groups, err := h.service.TopRatedByCategory(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.SuccessWithCount(c, groups, len(groups))
}

// handleError maps domain errors onto the status codes of the API:
// missing references are 404, validation failures and conflicts are 400,
// everything else is an opaque 500.
func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound),
		errors.Is(err, model.ErrAuthorNotFound),
		errors.Is(err, model.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrISBNAlreadyExists),
		errors.Is(err, model.ErrInvalidRating):
		response.BadRequest(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.BadRequestWithDetails(c, "Validation failed", verrs.Error())
			return
		}
		response.InternalServerError(c, err)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}
