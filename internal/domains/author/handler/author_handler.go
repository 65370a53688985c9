package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List handles GET /authors with nationality filter and pagination.
func (h *AuthorHandler) List(c *gin.Context) {
	filter := model.ParseAuthorFilter(c.Request.URL.Query())

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.Paginated(c, authors, total, filter.Page, filter.Limit, len(authors))
}

// GetByID handles GET /authors/:id with books populated.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Author created successfully", author)
}

// Update handles PUT /authors/:id.
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Author updated successfully", author)
}

// Delete handles DELETE /authors/:id. Refused while books reference
// the author; the failure message carries the current book count.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Author deleted successfully", nil)
}

// Search handles GET /authors/search?query&nationality&limit with
// case-insensitive substring matching over name/biography.
func (h *AuthorHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "Missing search query")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	authors, err := h.service.Search(c.Request.Context(), query, c.Query("nationality"), limit)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.SuccessWithCount(c, authors, len(authors))
}

// Nationalities handles GET /authors/nationalities.
func (h *AuthorHandler) Nationalities(c *gin.Context) {
	nationalities, err := h.service.Nationalities(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.SuccessWithCount(c, nationalities, len(nationalities))
}

// ListByNationality handles GET /authors/nationality/:nationality.
func (h *AuthorHandler) ListByNationality(c *gin.Context) {
	filter := model.ParseAuthorFilter(c.Request.URL.Query())

	authors, total, err := h.service.ListByNationality(c.Request.Context(), c.Param("nationality"), filter)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.Paginated(c, authors, total, filter.Page, filter.Limit, len(authors))
}

// TopByBooks handles GET /authors/top-by-books?limit.
func (h *AuthorHandler) TopByBooks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	authors, err := h.service.TopByBooks(c.Request.Context(), limit)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.SuccessWithCount(c, authors, len(authors))
}

// TopByRating handles GET /authors/top-by-rating?limit&minBooks.
func (h *AuthorHandler) TopByRating(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	minBooks, _ := strconv.Atoi(c.Query("minBooks"))

	authors, err := h.service.TopByRating(c.Request.Context(), limit, minBooks)
	if err != nil {
		response.InternalServerError(c, err)
		return
	}

	response.SuccessWithCount(c, authors, len(authors))
}

// Stats handles GET /authors/:id/stats.
func (h *AuthorHandler) Stats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var hasBooks *model.AuthorHasBooksError
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &hasBooks):
		response.BadRequest(c, hasBooks.Error())
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
