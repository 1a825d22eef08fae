package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/domains/book/repository"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/pkg/cache"
	"quotebook-backend/pkg/database"
)

type BookService struct {
	repo        repository.RepositoryInterface
	authors     AuthorResolver
	catalog     CatalogClient
	cache       cache.Cache
	searchLimit int
}

func NewService(
	repo repository.RepositoryInterface,
	authors AuthorResolver,
	catalog CatalogClient,
	cache cache.Cache,
	searchLimit int,
) ServiceInterface {
	return &BookService{
		repo:        repo,
		authors:     authors,
		catalog:     catalog,
		cache:       cache,
		searchLimit: searchLimit,
	}
}

// ResolveByOLID imports a catalog book into the local store on first
// reference. Author resolution is strictly sequential: every find-or-create
// shares the caller's unit of work, and an author inserted for this book
// must be visible to the association insert that follows.
func (s *BookService) ResolveByOLID(ctx context.Context, q database.Querier, olid string, fallbackCoverURL *string) (*model.Book, error) {
	existing, err := s.repo.GetByOLID(ctx, q, olid)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrBookNotFound) {
		return nil, err
	}

	data, err := s.catalog.GetBook(ctx, olid)
	if err != nil {
		log.Error().Err(err).Str("olid", olid).Msg("failed to fetch book from catalog")
		if errors.Is(err, openlibrary.ErrNotFound) {
			return nil, fmt.Errorf("book %s: %w", olid, model.ErrBookNotFound)
		}
		return nil, fmt.Errorf("book %s: %w", olid, model.ErrCatalogUnavailable)
	}

	authorIDs := make([]uuid.UUID, 0, len(data.AuthorOLIDs))
	authorNames := make([]string, 0, len(data.AuthorOLIDs))
	for _, authorOLID := range data.AuthorOLIDs {
		author, err := s.authors.FindOrCreateByOLID(ctx, q, authorOLID)
		if err != nil {
			return nil, err
		}
		authorIDs = append(authorIDs, author.ID)
		authorNames = append(authorNames, author.Name)
	}

	book := &model.Book{
		Title:         data.Title,
		AuthorName:    joinAuthorNames(authorNames),
		OpenLibraryID: olid,
	}
	if data.Description != "" {
		book.Summary = &data.Description
	}
	switch {
	case len(data.CoverIDs) > 0:
		coverURL := s.catalog.CoverURL(data.CoverIDs[0])
		book.CoverURL = &coverURL
	case fallbackCoverURL != nil:
		book.CoverURL = fallbackCoverURL
	}

	created, inserted, err := s.repo.Insert(ctx, q, book)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// A concurrent resolution won the insert. Its associations stand;
		// the ones resolved here are discarded. Book rows are caches of
		// the catalog, so either winner is acceptable.
		return s.repo.GetByOLID(ctx, q, olid)
	}

	for _, authorID := range authorIDs {
		if err := s.repo.LinkAuthor(ctx, q, created.ID, authorID); err != nil {
			return nil, err
		}
	}

	return created, nil
}

func (s *BookService) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, q, id)
}

func (s *BookService) RefreshAuthorNames(ctx context.Context) (int64, error) {
	return s.repo.RefreshAuthorNames(ctx)
}

func (s *BookService) RefreshAuthorName(ctx context.Context, bookID uuid.UUID) error {
	return s.repo.RefreshAuthorName(ctx, bookID)
}

func joinAuthorNames(names []string) string {
	if len(names) == 0 {
		return model.UnknownAuthorName
	}
	return strings.Join(names, ", ")
}
