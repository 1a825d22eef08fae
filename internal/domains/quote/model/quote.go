package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Quote is owned exclusively by its creating user and references exactly
// one book.
type Quote struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	Text       string     `json:"text" db:"text"`
	Chapter    *string    `json:"chapter" db:"chapter"`
	Language   *string    `json:"language" db:"language"`
	IsPublic   bool       `json:"is_public" db:"is_public"`
	IsFavorite bool       `json:"is_favorite" db:"is_favorite"`
	Tags       []string   `json:"tags" db:"tags"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" db:"updated_at"`
}

// BookInfo is the joined book projection returned with quote listings.
type BookInfo struct {
	Title      string  `json:"title"`
	AuthorName string  `json:"author_name"`
	CoverURL   *string `json:"cover_url"`
}

// QuoteWithBook is one row of a quote listing or search.
type QuoteWithBook struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Chapter    *string   `json:"chapter"`
	Language   *string   `json:"language"`
	IsPublic   bool      `json:"is_public"`
	IsFavorite bool      `json:"is_favorite"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	Book       BookInfo  `json:"book"`
}

// QuoteInput is one quote in a create request.
type QuoteInput struct {
	Text     string   `json:"text"`
	Chapter  *string  `json:"chapter"`
	Language *string  `json:"language"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags"`
}

func (q QuoteInput) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Text, validation.Required, validation.Length(1, 5000)),
		validation.Field(&q.Tags, validation.Each(validation.Length(1, 64))),
	)
}

// CreateQuotesRequest attaches one or more quotes to a book, referenced
// either by local id or by OpenLibrary id. CoverURL is the fallback cover
// for a book imported on the fly (typically carried over from the search
// result the user picked).
type CreateQuotesRequest struct {
	BookID        *uuid.UUID   `json:"book_id"`
	OpenLibraryID *string      `json:"openlibrary_id"`
	CoverURL      *string      `json:"cover_url"`
	Quotes        []QuoteInput `json:"quotes"`
}

func (r CreateQuotesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quotes, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateQuoteRequest patches a quote in place. Nil fields are left
// untouched; BookID/OpenLibraryID reassign the quote to another book.
type UpdateQuoteRequest struct {
	Text          *string    `json:"text"`
	Chapter       *string    `json:"chapter"`
	Language      *string    `json:"language"`
	IsPublic      *bool      `json:"is_public"`
	IsFavorite    *bool      `json:"is_favorite"`
	Tags          *[]string  `json:"tags"`
	BookID        *uuid.UUID `json:"book_id"`
	OpenLibraryID *string    `json:"openlibrary_id"`
}

func (r UpdateQuoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.NilOrNotEmpty, validation.Length(1, 5000)),
	)
}

// DeleteQuotesRequest removes a batch of the caller's quotes.
type DeleteQuotesRequest struct {
	QuoteIDs []uuid.UUID `json:"quote_ids"`
}
