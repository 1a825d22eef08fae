package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/pkg/cache"
	"quotebook-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface with pgx and a Redis
// read cache for by-id lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

const bookColumns = "id, title, author_name, summary, cover_url, openlibrary_id, created_at, updated_at"

func (r *postgresRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE id = $1
    `

	b, err := scanBook(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, bookCacheTTL)

	return b, nil
}

func (r *postgresRepository) GetByOLID(ctx context.Context, q database.Querier, olid string) (*model.Book, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE openlibrary_id = $1
    `

	b, err := scanBook(q.QueryRow(ctx, query, olid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by openlibrary id: %w", err)
	}

	return b, nil
}

// Insert is idempotent on openlibrary_id: a concurrent duplicate comes back
// as inserted=false instead of a unique-violation error.
func (r *postgresRepository) Insert(ctx context.Context, q database.Querier, b *model.Book) (*model.Book, bool, error) {
	query := `
        INSERT INTO books (title, author_name, summary, cover_url, openlibrary_id)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (openlibrary_id) DO NOTHING
        RETURNING ` + bookColumns

	created, err := scanBook(q.QueryRow(
		ctx,
		query,
		b.Title,
		b.AuthorName,
		b.Summary,
		b.CoverURL,
		b.OpenLibraryID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert book: %w", err)
	}

	return created, true, nil
}

func (r *postgresRepository) LinkAuthor(ctx context.Context, q database.Querier, bookID, authorID uuid.UUID) error {
	query := `
        INSERT INTO book_authors (book_id, author_id)
        VALUES ($1, $2)
        ON CONFLICT (book_id, author_id) DO NOTHING
    `

	if _, err := q.Exec(ctx, query, bookID, authorID); err != nil {
		return fmt.Errorf("failed to link author %s to book %s: %w", authorID, bookID, err)
	}
	return nil
}

func (r *postgresRepository) SearchLocal(ctx context.Context, query string) ([]model.Book, error) {
	searchQuery := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE title ILIKE $1 OR author_name ILIKE $1
        ORDER BY title ASC
    `

	rows, err := r.pool.Query(ctx, searchQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.AuthorName,
			&b.Summary,
			&b.CoverURL,
			&b.OpenLibraryID,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// RefreshAuthorNames rebuilds the author_name snapshot from the current
// association rows, joined in association-creation order. Books without
// associations keep their existing snapshot ("Unknown" from insert time).
func (r *postgresRepository) RefreshAuthorNames(ctx context.Context) (int64, error) {
	query := `
        UPDATE books b
        SET author_name = sub.names, updated_at = NOW()
        FROM (
            SELECT ba.book_id, string_agg(a.name, ', ' ORDER BY ba.created_at, a.id) AS names
            FROM book_authors ba
            JOIN authors a ON a.id = ba.author_id
            GROUP BY ba.book_id
        ) sub
        WHERE b.id = sub.book_id AND b.author_name IS DISTINCT FROM sub.names
    `

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh author names: %w", err)
	}

	if tag.RowsAffected() > 0 {
		r.cache.DeletePattern(ctx, bookCacheKeyPrefix+"*")
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) RefreshAuthorName(ctx context.Context, bookID uuid.UUID) error {
	query := `
        UPDATE books b
        SET author_name = COALESCE(sub.names, $2), updated_at = NOW()
        FROM (
            SELECT string_agg(a.name, ', ' ORDER BY ba.created_at, a.id) AS names
            FROM book_authors ba
            JOIN authors a ON a.id = ba.author_id
            WHERE ba.book_id = $1
        ) sub
        WHERE b.id = $1
    `

	if _, err := r.pool.Exec(ctx, query, bookID, model.UnknownAuthorName); err != nil {
		return fmt.Errorf("failed to refresh author name for book %s: %w", bookID, err)
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+bookID.String())
	return nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorName,
		&b.Summary,
		&b.CoverURL,
		&b.OpenLibraryID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
