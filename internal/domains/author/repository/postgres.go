package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"quotebook-backend/internal/domains/author/model"
	"quotebook-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface with raw pgx queries.
type postgresRepository struct{}

func NewPostgresRepository() RepositoryInterface {
	return &postgresRepository{}
}

const authorColumns = "id, name, openlibrary_id, born, death, image_url, created_at, updated_at"

func (r *postgresRepository) GetByOLID(ctx context.Context, q database.Querier, olid string) (*model.Author, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        WHERE openlibrary_id = $1
    `

	a, err := scanAuthor(q.QueryRow(ctx, query, olid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by openlibrary id: %w", err)
	}

	return a, nil
}

// Insert is the conflict-safe half of find-or-create: ON CONFLICT DO NOTHING
// turns a concurrent duplicate insert into a zero-row result instead of an
// error, and inserted=false tells the caller to re-read the winning row.
func (r *postgresRepository) Insert(ctx context.Context, q database.Querier, a *model.Author) (*model.Author, bool, error) {
	query := `
        INSERT INTO authors (name, openlibrary_id, born, death, image_url)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (openlibrary_id) DO NOTHING
        RETURNING ` + authorColumns

	created, err := scanAuthor(q.QueryRow(
		ctx,
		query,
		a.Name,
		a.OpenLibraryID,
		a.Born,
		a.Death,
		a.ImageURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert author: %w", err)
	}

	return created, true, nil
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.OpenLibraryID,
		&a.Born,
		&a.Death,
		&a.ImageURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
