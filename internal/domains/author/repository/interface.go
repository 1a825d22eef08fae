package repository

import (
	"context"

	"quotebook-backend/internal/domains/author/model"
	"quotebook-backend/pkg/database"
)

// RepositoryInterface is the author data-access contract. Every method takes
// an explicit database.Querier so a caller-supplied transaction threads
// through the whole resolution.
type RepositoryInterface interface {
	// GetByOLID returns the author with the given OpenLibrary id, or
	// model.ErrAuthorNotFound.
	GetByOLID(ctx context.Context, q database.Querier, olid string) (*model.Author, error)

	// Insert adds a new author row. When another transaction already
	// inserted the same OpenLibrary id, the insert is a no-op and
	// inserted is false; the caller is expected to re-read.
	Insert(ctx context.Context, q database.Querier, a *model.Author) (*model.Author, bool, error)
}
