package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/internal/shared/normalize"
)

const (
	searchCacheKeyPrefix = "books:search:"
	searchCacheTTL       = 10 * time.Minute
)

// SearchBooks answers a book search from both stores at once. The local
// substring search and the catalog search have no data dependency, so they
// run concurrently; results are combined only after both complete. A catalog
// failure already degrades to an empty list inside the client, so the merge
// simply sees no external rows.
func (s *BookService) SearchBooks(ctx context.Context, query string) ([]model.SearchResultItem, error) {
	if query == "" {
		return nil, model.ErrEmptyQuery
	}

	cacheKey := searchCacheKeyPrefix + normalize.Fold(query)
	var cached []model.SearchResultItem
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	var (
		local    []model.Book
		external []openlibrary.SearchDoc
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		local, err = s.repo.SearchLocal(gctx, query)
		return err
	})
	g.Go(func() error {
		external = s.catalog.Search(gctx, query, s.searchLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := mergeSearchResults(local, external)

	if err := s.cache.Set(ctx, cacheKey, results, searchCacheTTL); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to cache search results")
	}

	return results, nil
}

// mergeSearchResults deduplicates local and external rows. Local rows are
// authoritative once cached: they come first in their own order, and an
// external row is dropped whenever a local row shares its identity key.
// External rows keep the catalog's relevance order.
func mergeSearchResults(local []model.Book, external []openlibrary.SearchDoc) []model.SearchResultItem {
	results := make([]model.SearchResultItem, 0, len(local)+len(external))
	seen := make(map[string]struct{}, len(local))

	for i := range local {
		b := &local[i]
		seen[localIdentityKey(b)] = struct{}{}

		id := b.ID
		item := model.SearchResultItem{
			Title:         b.Title,
			AuthorName:    b.AuthorName,
			BookID:        &id,
			OpenLibraryID: b.OpenLibraryID,
			Source:        model.SourceLocal,
		}
		if b.CoverURL != nil {
			item.CoverURL = *b.CoverURL
		}
		results = append(results, item)
	}

	for _, doc := range external {
		if _, dup := seen[externalIdentityKey(&doc)]; dup {
			continue
		}
		results = append(results, model.SearchResultItem{
			Title:         doc.Title,
			AuthorName:    joinAuthorNames(doc.AuthorNames),
			OpenLibraryID: doc.OLID,
			CoverURL:      doc.CoverURL,
			Source:        model.SourceExternal,
		})
	}

	return results
}

// localIdentityKey prefers the stable catalog id; books imported before an
// id was recorded fall back to normalized title+author.
func localIdentityKey(b *model.Book) string {
	if b.OpenLibraryID != "" {
		return "ext:" + b.OpenLibraryID
	}
	return normalize.Fold(b.Title) + "_" + normalize.Fold(b.AuthorName)
}

func externalIdentityKey(doc *openlibrary.SearchDoc) string {
	if doc.OLID != "" {
		return "ext:" + doc.OLID
	}
	author := ""
	if len(doc.AuthorNames) > 0 {
		author = doc.AuthorNames[0]
	}
	return normalize.Fold(doc.Title) + "_" + normalize.Fold(author)
}
