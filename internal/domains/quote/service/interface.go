package service

import (
	"context"

	"github.com/google/uuid"

	bookmodel "quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/pkg/database"
)

// BookResolver is the slice of the book service quote operations need: a
// plain lookup for explicit book ids and an import-on-first-reference
// resolution for OpenLibrary ids.
type BookResolver interface {
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*bookmodel.Book, error)
	ResolveByOLID(ctx context.Context, q database.Querier, olid string, fallbackCoverURL *string) (*bookmodel.Book, error)
}

// ServiceInterface exposes the quote operations. Every method is scoped to
// the calling user; no operation can see or touch another user's quotes.
type ServiceInterface interface {
	// CreateQuotes attaches a batch of quotes to a book, importing the
	// book first when only an OpenLibrary id is given.
	CreateQuotes(ctx context.Context, userID string, req *model.CreateQuotesRequest) ([]model.Quote, error)

	// GetUserQuotes returns one page of the user's quotes plus the total
	// count for pagination.
	GetUserQuotes(ctx context.Context, userID string, page, perPage int) ([]model.QuoteWithBook, int64, error)

	// GetUserQuotesCount returns the user's total quote count.
	GetUserQuotesCount(ctx context.Context, userID string) (int64, error)

	// GetUserFavoriteQuotes returns all of the user's favorites.
	GetUserFavoriteQuotes(ctx context.Context, userID string) ([]model.QuoteWithBook, error)

	// SearchUserQuotes ranks the user's quotes against a free-text query.
	SearchUserQuotes(ctx context.Context, userID, query string) ([]model.QuoteWithBook, error)

	// UpdateUserQuote patches one of the user's quotes, optionally
	// reassigning it to another book.
	UpdateUserQuote(ctx context.Context, userID string, quoteID uuid.UUID, req *model.UpdateQuoteRequest) (*model.Quote, error)

	// DeleteUserQuotes removes a batch of the user's quotes and returns
	// the number actually deleted.
	DeleteUserQuotes(ctx context.Context, userID string, ids []uuid.UUID) (int64, error)
}
