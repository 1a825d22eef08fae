package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "quotebook-backend/internal/domains/author/model"
	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/pkg/database"
)

// CatalogClient is the slice of the OpenLibrary client this service needs.
type CatalogClient interface {
	GetBook(ctx context.Context, olid string) (*openlibrary.Book, error)
	CoverURL(coverID int64) string
	Search(ctx context.Context, query string, limit int) []openlibrary.SearchDoc
}

// AuthorResolver is the author find-or-create dependency; resolution runs
// inside the book resolver's unit of work.
type AuthorResolver interface {
	FindOrCreateByOLID(ctx context.Context, q database.Querier, olid string) (*authormodel.Author, error)
}

// ServiceInterface resolves and searches books.
type ServiceInterface interface {
	// ResolveByOLID returns the local book row for an OpenLibrary id,
	// importing it (and its authors) from the catalog on first reference.
	// fallbackCoverURL is used when the catalog has no cover.
	ResolveByOLID(ctx context.Context, q database.Querier, olid string, fallbackCoverURL *string) (*model.Book, error)

	// GetByID returns a stored book, or model.ErrBookNotFound.
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Book, error)

	// SearchBooks merges local and catalog search results into one
	// deduplicated list; local rows win over external duplicates.
	SearchBooks(ctx context.Context, query string) ([]model.SearchResultItem, error)

	// RefreshAuthorNames recomputes stale author_name snapshots.
	RefreshAuthorNames(ctx context.Context) (int64, error)

	// RefreshAuthorName recomputes the snapshot for one book.
	RefreshAuthorName(ctx context.Context, bookID uuid.UUID) error
}
