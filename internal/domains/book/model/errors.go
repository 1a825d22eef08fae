package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/shared/response"
)

var (
	// ErrBookNotFound means neither the local store nor the catalog has
	// the requested book.
	ErrBookNotFound = errors.New("book not found")
	// ErrCatalogUnavailable means the catalog could not be reached; the
	// local store alone cannot answer the request.
	ErrCatalogUnavailable = errors.New("book catalog unavailable")
	// ErrEmptyQuery rejects a search without a query before any I/O.
	ErrEmptyQuery = errors.New("search query must not be empty")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "The requested book does not exist",
	},
	ErrCatalogUnavailable: {
		Status:  http.StatusBadGateway,
		Code:    "CATALOG_UNAVAILABLE",
		Message: "The book catalog is currently unreachable",
	},
	ErrEmptyQuery: {
		Status:  http.StatusBadRequest,
		Code:    "EMPTY_QUERY",
		Message: "A search query is required",
	},
}

// HandleBookError writes the mapped response for a known domain error and
// reports whether err was handled.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for domainErr, cfg := range bookErrorMap {
		if errors.Is(err, domainErr) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("unhandled book error")
	response.InternalError(c, "Internal server error")
	return true
}
