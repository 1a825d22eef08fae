package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/domains/author/model"
	"quotebook-backend/internal/domains/author/repository"
	"quotebook-backend/pkg/database"
)

type AuthorService struct {
	repo    repository.RepositoryInterface
	catalog CatalogClient
}

func NewService(repo repository.RepositoryInterface, catalog CatalogClient) ServiceInterface {
	return &AuthorService{
		repo:    repo,
		catalog: catalog,
	}
}

// FindOrCreateByOLID implements find-or-create by natural key. An existing
// row is returned unchanged; stale fields are not refreshed here. On a lost
// insert race the winning row is re-read and returned.
func (s *AuthorService) FindOrCreateByOLID(ctx context.Context, q database.Querier, olid string) (*model.Author, error) {
	existing, err := s.repo.GetByOLID(ctx, q, olid)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, err
	}

	data, err := s.catalog.GetAuthor(ctx, olid)
	if err != nil {
		log.Error().Err(err).Str("olid", olid).Msg("failed to fetch author from catalog")
		return nil, fmt.Errorf("author %s: %w", olid, model.ErrAuthorNotFound)
	}

	author := &model.Author{
		Name:          data.Name,
		OpenLibraryID: &olid,
	}
	if data.BirthDate != "" {
		author.Born = &data.BirthDate
	}
	if data.PictureURL != "" {
		author.ImageURL = &data.PictureURL
	}

	created, inserted, err := s.repo.Insert(ctx, q, author)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost the race against a concurrent first reference; the
		// unique constraint guarantees the winner is readable now.
		return s.repo.GetByOLID(ctx, q, olid)
	}

	return created, nil
}
