package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/internal/domains/quote/service"
	"quotebook-backend/internal/shared/middleware"
	"quotebook-backend/internal/shared/response"
)

type QuoteHandler struct {
	service service.ServiceInterface
}

func NewQuoteHandler(service service.ServiceInterface) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// CreateQuotes handles POST /quotes
func (h *QuoteHandler) CreateQuotes(c *gin.Context) {
	var req model.CreateQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.CreateQuotes(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		model.HandleQuoteError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// GetQuotes handles GET /quotes?page=&perPage=
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	quotes, total, err := h.service.GetUserQuotes(c.Request.Context(), middleware.UserID(c), page, perPage)
	if err != nil {
		model.HandleQuoteError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, quotes, &response.Meta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

// GetQuotesCount handles GET /quotes/count
func (h *QuoteHandler) GetQuotesCount(c *gin.Context) {
	total, err := h.service.GetUserQuotesCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to count quotes")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": total})
}

// GetFavoriteQuotes handles GET /quotes/favorites
func (h *QuoteHandler) GetFavoriteQuotes(c *gin.Context) {
	quotes, err := h.service.GetUserFavoriteQuotes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to list favorite quotes")
		return
	}

	response.Success(c, http.StatusOK, quotes)
}

// SearchQuotes handles GET /quotes/search?query=
func (h *QuoteHandler) SearchQuotes(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "No query provided")
		return
	}

	results, err := h.service.SearchUserQuotes(c.Request.Context(), middleware.UserID(c), query)
	if err != nil {
		response.InternalError(c, "Failed to search quotes")
		return
	}

	response.Success(c, http.StatusOK, results)
}

// UpdateQuote handles PATCH /quotes/:quoteId
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("quoteId"))
	if err != nil {
		response.BadRequest(c, "Invalid quote id")
		return
	}

	var req model.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateUserQuote(c.Request.Context(), middleware.UserID(c), quoteID, &req)
	if err != nil {
		model.HandleQuoteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteQuotes handles DELETE /quotes
func (h *QuoteHandler) DeleteQuotes(c *gin.Context) {
	var req model.DeleteQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	deleted, err := h.service.DeleteUserQuotes(c.Request.Context(), middleware.UserID(c), req.QuoteIDs)
	if err != nil {
		model.HandleQuoteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
