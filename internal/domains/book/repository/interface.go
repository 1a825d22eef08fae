package repository

import (
	"context"

	"github.com/google/uuid"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/pkg/database"
)

// RepositoryInterface is the book data-access contract. Resolution methods
// take an explicit database.Querier so they run inside the caller's unit of
// work; read-only search goes straight to the pool.
type RepositoryInterface interface {
	// GetByID returns the book with the given local id, or
	// model.ErrBookNotFound.
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Book, error)

	// GetByOLID returns the book with the given OpenLibrary id, or
	// model.ErrBookNotFound.
	GetByOLID(ctx context.Context, q database.Querier, olid string) (*model.Book, error)

	// Insert adds a new book row. When a row with the same OpenLibrary id
	// already exists, the insert is a no-op and inserted is false; the
	// caller re-reads the existing row.
	Insert(ctx context.Context, q database.Querier, b *model.Book) (*model.Book, bool, error)

	// LinkAuthor records one book-author association.
	LinkAuthor(ctx context.Context, q database.Querier, bookID, authorID uuid.UUID) error

	// SearchLocal returns stored books whose title or author name contains
	// the query as a case-insensitive substring, ordered by title.
	SearchLocal(ctx context.Context, query string) ([]model.Book, error)

	// RefreshAuthorNames recomputes the denormalized author_name snapshot
	// for every book whose associations no longer match it. Returns the
	// number of updated rows.
	RefreshAuthorNames(ctx context.Context) (int64, error)

	// RefreshAuthorName recomputes the snapshot for a single book.
	RefreshAuthorName(ctx context.Context, bookID uuid.UUID) error
}
