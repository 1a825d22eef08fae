package model

import (
	"time"

	"github.com/google/uuid"
)

// UnknownAuthorName is cached for books the catalog lists without authors.
const UnknownAuthorName = "Unknown"

// Book is an eventually-consistent cache of a catalog record, keyed by its
// OpenLibrary id. AuthorName is a point-in-time snapshot of the associated
// authors taken at insert time; it is recomputed only by the maintenance
// worker, never implicitly.
type Book struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	AuthorName    string     `json:"author_name" db:"author_name"`
	Summary       *string    `json:"summary" db:"summary"`
	CoverURL      *string    `json:"cover_url" db:"cover_url"`
	OpenLibraryID string     `json:"openlibrary_id" db:"openlibrary_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}

// Search result provenance.
const (
	SourceLocal    = "local"
	SourceExternal = "external"
)

// SearchResultItem is one row of the aggregated book search. Local rows
// carry a BookID, external rows an OpenLibraryID (when the catalog provides
// one); Source tells the caller which store the row came from.
type SearchResultItem struct {
	Title         string     `json:"title"`
	AuthorName    string     `json:"author_name"`
	BookID        *uuid.UUID `json:"book_id,omitempty"`
	OpenLibraryID string     `json:"openlibrary_id,omitempty"`
	CoverURL      string     `json:"cover_url,omitempty"`
	Source        string     `json:"source"`
}
