package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// searchResultLimit caps relevance search output.
const searchResultLimit = 50

const quoteColumns = "id, book_id, user_id, text, chapter, language, is_public, is_favorite, tags, created_at, updated_at"

func (r *postgresRepository) InsertBatch(ctx context.Context, q database.Querier, quotes []model.Quote) ([]model.Quote, error) {
	query := `
        INSERT INTO quotes (book_id, user_id, text, chapter, language, is_public, is_favorite, tags)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + quoteColumns

	created := make([]model.Quote, 0, len(quotes))
	for i := range quotes {
		in := &quotes[i]
		row, err := scanQuote(q.QueryRow(
			ctx,
			query,
			in.BookID,
			in.UserID,
			in.Text,
			in.Chapter,
			in.Language,
			in.IsPublic,
			in.IsFavorite,
			in.Tags,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to insert quote: %w", err)
		}
		created = append(created, *row)
	}

	return created, nil
}

const quoteWithBookColumns = `
        q.id, q.text, q.chapter, q.language, q.is_public, q.is_favorite, q.tags, q.created_at,
        b.title, b.author_name, b.cover_url`

func (r *postgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.QuoteWithBook, error) {
	query := `
        SELECT ` + quoteWithBookColumns + `
        FROM quotes q
        JOIN books b ON b.id = q.book_id
        WHERE q.user_id = $1
        ORDER BY q.created_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	return collectQuotesWithBook(rows)
}

func (r *postgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) ListFavoritesByUser(ctx context.Context, userID string) ([]model.QuoteWithBook, error) {
	query := `
        SELECT ` + quoteWithBookColumns + `
        FROM quotes q
        JOIN books b ON b.id = q.book_id
        WHERE q.user_id = $1 AND q.is_favorite = true
        ORDER BY q.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite quotes: %w", err)
	}
	defer rows.Close()

	return collectQuotesWithBook(rows)
}

// quoteDocument is the weighted searchable document per quote: quote text
// weighs most, then tags, then the joined book title and author snapshot.
// The 'simple' configuration keeps tokens as-is (no stemming, no accent
// folding), matching the query sanitizer.
const quoteDocument = `
            setweight(to_tsvector('simple', coalesce(q.text, '')), 'A') ||
            setweight(to_tsvector('simple', coalesce(array_to_string(q.tags, ' '), '')), 'B') ||
            setweight(to_tsvector('simple', coalesce(b.title, '')), 'C') ||
            setweight(to_tsvector('simple', coalesce(b.author_name, '')), 'D')`

// SearchByUser relies on @@ to keep only documents with at least one
// matching token, so every returned row has a nonzero rank.
func (r *postgresRepository) SearchByUser(ctx context.Context, userID, sanitizedQuery string) ([]model.QuoteWithBook, error) {
	query := `
        SELECT ` + quoteWithBookColumns + `
        FROM quotes q
        JOIN books b ON b.id = q.book_id
        WHERE q.user_id = $1
          AND (` + quoteDocument + `) @@ plainto_tsquery('simple', $2)
        ORDER BY ts_rank(` + quoteDocument + `, plainto_tsquery('simple', $2)) DESC
        LIMIT $3
    `

	rows, err := r.pool.Query(ctx, query, userID, sanitizedQuery, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search quotes: %w", err)
	}
	defer rows.Close()

	return collectQuotesWithBook(rows)
}

func (r *postgresRepository) Update(ctx context.Context, q database.Querier, userID string, quoteID uuid.UUID, patch *model.UpdateQuoteRequest, newBookID *uuid.UUID) (*model.Quote, error) {
	var setClauses []string
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if patch.Text != nil {
		addSet("text", *patch.Text)
	}
	if patch.Chapter != nil {
		addSet("chapter", *patch.Chapter)
	}
	if patch.Language != nil {
		addSet("language", *patch.Language)
	}
	if patch.IsPublic != nil {
		addSet("is_public", *patch.IsPublic)
	}
	if patch.IsFavorite != nil {
		addSet("is_favorite", *patch.IsFavorite)
	}
	if patch.Tags != nil {
		addSet("tags", *patch.Tags)
	}
	if newBookID != nil {
		addSet("book_id", *newBookID)
	}

	if len(setClauses) == 0 {
		// Nothing to change; return the current row, scoped to the owner.
		query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 AND user_id = $2`
		row, err := scanQuote(q.QueryRow(ctx, query, quoteID, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrQuoteNotFound
			}
			return nil, fmt.Errorf("failed to get quote: %w", err)
		}
		return row, nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
        UPDATE quotes
        SET %s
        WHERE id = $%d AND user_id = $%d
        RETURNING `+quoteColumns,
		strings.Join(setClauses, ", "), argPos, argPos+1)
	args = append(args, quoteID, userID)

	row, err := scanQuote(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	return row, nil
}

func (r *postgresRepository) DeleteByUser(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete quotes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var quote model.Quote
	err := row.Scan(
		&quote.ID,
		&quote.BookID,
		&quote.UserID,
		&quote.Text,
		&quote.Chapter,
		&quote.Language,
		&quote.IsPublic,
		&quote.IsFavorite,
		&quote.Tags,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func collectQuotesWithBook(rows pgx.Rows) ([]model.QuoteWithBook, error) {
	var quotes []model.QuoteWithBook
	for rows.Next() {
		var q model.QuoteWithBook
		if err := rows.Scan(
			&q.ID,
			&q.Text,
			&q.Chapter,
			&q.Language,
			&q.IsPublic,
			&q.IsFavorite,
			&q.Tags,
			&q.CreatedAt,
			&q.Book.Title,
			&q.Book.AuthorName,
			&q.Book.CoverURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotes: %w", err)
	}

	return quotes, nil
}
