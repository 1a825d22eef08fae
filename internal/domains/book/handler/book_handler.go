package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/domains/book/service"
	"quotebook-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// SearchBooks handles GET /books/search?query=
func (h *BookHandler) SearchBooks(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "No query provided")
		return
	}

	results, err := h.service.SearchBooks(c.Request.Context(), query)
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}
