package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is a shared, content-addressed-by-OpenLibrary-id entity. Rows are
// created on first reference and never deleted by this service; fields are
// only backfilled, never overwritten on re-resolve.
type Author struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	OpenLibraryID *string    `json:"openlibrary_id" db:"openlibrary_id"`
	Born          *string    `json:"born" db:"born"`
	Death         *string    `json:"death" db:"death"`
	ImageURL      *string    `json:"image_url" db:"image_url"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}
