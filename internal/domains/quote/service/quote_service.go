package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	bookmodel "quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/internal/domains/quote/repository"
	"quotebook-backend/internal/shared/normalize"
	"quotebook-backend/pkg/database"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type QuoteService struct {
	repo  repository.RepositoryInterface
	books BookResolver

	// runInTx wraps the write paths in a unit of work. Swapped out in
	// tests, where no pool exists.
	runInTx func(ctx context.Context, fn database.TxFunc) error
}

func NewService(repo repository.RepositoryInterface, books BookResolver, pool *pgxpool.Pool) ServiceInterface {
	return &QuoteService{
		repo:  repo,
		books: books,
		runInTx: func(ctx context.Context, fn database.TxFunc) error {
			return database.WithTransaction(ctx, pool, fn)
		},
	}
}

// CreateQuotes runs the whole batch in one transaction: either the book
// resolves and every quote lands, or nothing is written.
func (s *QuoteService) CreateQuotes(ctx context.Context, userID string, req *model.CreateQuotesRequest) ([]model.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, in := range req.Quotes {
		if err := in.Validate(); err != nil {
			return nil, err
		}
	}
	if req.BookID == nil && req.OpenLibraryID == nil {
		return nil, model.ErrMissingBookRef
	}

	var created []model.Quote
	err := s.runInTx(ctx, func(tx pgx.Tx) error {
		book, err := s.resolveBookRef(ctx, tx, req.BookID, req.OpenLibraryID, req.CoverURL)
		if err != nil {
			return err
		}

		quotes := make([]model.Quote, 0, len(req.Quotes))
		for _, in := range req.Quotes {
			quotes = append(quotes, model.Quote{
				BookID:   book.ID,
				UserID:   userID,
				Text:     in.Text,
				Chapter:  in.Chapter,
				Language: in.Language,
				IsPublic: in.IsPublic,
				Tags:     in.Tags,
			})
		}

		created, err = s.repo.InsertBatch(ctx, tx, quotes)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *QuoteService) GetUserQuotes(ctx context.Context, userID string, page, perPage int) ([]model.QuoteWithBook, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	offset := (page - 1) * perPage

	var (
		quotes []model.QuoteWithBook
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = s.repo.ListByUser(gctx, userID, perPage, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

func (s *QuoteService) GetUserQuotesCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *QuoteService) GetUserFavoriteQuotes(ctx context.Context, userID string) ([]model.QuoteWithBook, error) {
	return s.repo.ListFavoritesByUser(ctx, userID)
}

// SearchUserQuotes sanitizes the raw query before ranking. A query that
// sanitizes down to nothing matches nothing.
func (s *QuoteService) SearchUserQuotes(ctx context.Context, userID, query string) ([]model.QuoteWithBook, error) {
	sanitized := normalize.SanitizeQuery(query)
	if sanitized == "" {
		return []model.QuoteWithBook{}, nil
	}

	return s.repo.SearchByUser(ctx, userID, sanitized)
}

func (s *QuoteService) UpdateUserQuote(ctx context.Context, userID string, quoteID uuid.UUID, req *model.UpdateQuoteRequest) (*model.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Quote
	err := s.runInTx(ctx, func(tx pgx.Tx) error {
		var newBookID *uuid.UUID
		if req.BookID != nil || req.OpenLibraryID != nil {
			book, err := s.resolveBookRef(ctx, tx, req.BookID, req.OpenLibraryID, nil)
			if err != nil {
				return err
			}
			newBookID = &book.ID
		}

		var err error
		updated, err = s.repo.Update(ctx, tx, userID, quoteID, req, newBookID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *QuoteService) DeleteUserQuotes(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, model.ErrNoQuoteIDs
	}

	return s.repo.DeleteByUser(ctx, userID, ids)
}

// resolveBookRef turns a book reference into a stored row. An explicit local
// id takes precedence over an OpenLibrary id when both are given.
func (s *QuoteService) resolveBookRef(ctx context.Context, q database.Querier, bookID *uuid.UUID, olid, coverURL *string) (*bookmodel.Book, error) {
	if bookID != nil {
		book, err := s.books.GetByID(ctx, q, *bookID)
		if err != nil {
			return nil, fmt.Errorf("book %s: %w", *bookID, err)
		}
		return book, nil
	}
	if olid != nil {
		return s.books.ResolveByOLID(ctx, q, *olid, coverURL)
	}

	return nil, model.ErrMissingBookRef
}
