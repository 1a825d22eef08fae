package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/shared/response"
)

var (
	// ErrQuoteNotFound covers both a missing quote and a quote owned by
	// another user; callers cannot tell the two apart.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrMissingBookRef rejects a create/update that names neither a
	// local book id nor an OpenLibrary id, before any I/O happens.
	ErrMissingBookRef = errors.New("either book_id or openlibrary_id must be provided")
	// ErrNoQuoteIDs rejects a bulk delete without ids.
	ErrNoQuoteIDs = errors.New("no quote ids provided")
)

var quoteErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrQuoteNotFound: {
		Status:  http.StatusNotFound,
		Code:    "QUOTE_NOT_FOUND",
		Message: "The requested quote does not exist",
	},
	ErrMissingBookRef: {
		Status:  http.StatusBadRequest,
		Code:    "MISSING_BOOK_REF",
		Message: "Either book_id or openlibrary_id must be provided",
	},
	ErrNoQuoteIDs: {
		Status:  http.StatusBadRequest,
		Code:    "NO_QUOTE_IDS",
		Message: "No quote ids provided",
	},
}

// HandleQuoteError writes the mapped response for a known error. Validation
// failures become a 400 with per-field details; book resolution errors
// bubbling out of quote operations are delegated to the book domain's
// mapping.
func HandleQuoteError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", vErrs)
		return true
	}

	for domainErr, cfg := range quoteErrorMap {
		if errors.Is(err, domainErr) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	return bookmodel.HandleBookError(c, err)
}
