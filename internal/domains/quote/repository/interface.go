package repository

import (
	"context"

	"github.com/google/uuid"

	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/pkg/database"
)

// RepositoryInterface is the quote data-access contract.
type RepositoryInterface interface {
	// InsertBatch inserts the given quotes inside the caller's unit of
	// work and returns the created rows in input order.
	InsertBatch(ctx context.Context, q database.Querier, quotes []model.Quote) ([]model.Quote, error)

	// ListByUser returns a page of the user's quotes, newest first,
	// joined with their book.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.QuoteWithBook, error)

	// CountByUser returns the user's total quote count.
	CountByUser(ctx context.Context, userID string) (int64, error)

	// ListFavoritesByUser returns the user's favorite quotes joined with
	// their book.
	ListFavoritesByUser(ctx context.Context, userID string) ([]model.QuoteWithBook, error)

	// SearchByUser ranks the user's quotes against an already-sanitized
	// query and returns at most the top 50 matches.
	SearchByUser(ctx context.Context, userID, sanitizedQuery string) ([]model.QuoteWithBook, error)

	// Update patches a quote owned by userID. newBookID, when non-nil,
	// reassigns the quote. Returns model.ErrQuoteNotFound when the quote
	// does not exist or belongs to someone else.
	Update(ctx context.Context, q database.Querier, userID string, quoteID uuid.UUID, patch *model.UpdateQuoteRequest, newBookID *uuid.UUID) (*model.Quote, error)

	// DeleteByUser removes the given quotes if owned by userID and
	// returns how many rows went away.
	DeleteByUser(ctx context.Context, userID string, ids []uuid.UUID) (int64, error)
}
