package service

import (
	"context"

	"quotebook-backend/internal/domains/author/model"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/pkg/database"
)

// CatalogClient is the slice of the OpenLibrary client this service needs.
type CatalogClient interface {
	GetAuthor(ctx context.Context, olid string) (*openlibrary.Author, error)
}

// ServiceInterface resolves authors by OpenLibrary id.
type ServiceInterface interface {
	// FindOrCreateByOLID returns the author for the given OpenLibrary id,
	// importing it from the catalog on first reference. Safe under
	// concurrent first references: at most one row per id ever exists.
	FindOrCreateByOLID(ctx context.Context, q database.Querier, olid string) (*model.Author, error)
}
