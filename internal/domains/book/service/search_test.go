package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/openlibrary"
)

func localBook(title, authorName, olid string) model.Book {
	return model.Book{
		ID:            uuid.New(),
		Title:         title,
		AuthorName:    authorName,
		OpenLibraryID: olid,
	}
}

func TestMergeDropsExternalDuplicateByOLID(t *testing.T) {
	local := []model.Book{localBook("Dune", "Frank Herbert", "OL1")}
	external := []openlibrary.SearchDoc{
		{Title: "Dune", AuthorNames: []string{"Frank Herbert"}, OLID: "OL1"},
	}

	results := mergeSearchResults(local, external)

	require.Len(t, results, 1)
	assert.Equal(t, model.SourceLocal, results[0].Source)
	assert.NotNil(t, results[0].BookID)
}

func TestMergeDropsExternalDuplicateByNormalizedTitleAuthor(t *testing.T) {
	local := []model.Book{localBook("Dune", "Frank Herbert", "")}
	external := []openlibrary.SearchDoc{
		{Title: "DUNE", AuthorNames: []string{"Frank Herbert"}},
	}

	results := mergeSearchResults(local, external)

	require.Len(t, results, 1)
	assert.Equal(t, model.SourceLocal, results[0].Source)
}

func TestMergeLocalFirstThenExternalInCatalogOrder(t *testing.T) {
	local := []model.Book{
		localBook("Children of Dune", "Frank Herbert", "OL3"),
		localBook("Dune", "Frank Herbert", "OL1"),
	}
	external := []openlibrary.SearchDoc{
		{Title: "Dune Messiah", AuthorNames: []string{"Frank Herbert"}, OLID: "OL2"},
		{Title: "Dune", AuthorNames: []string{"Frank Herbert"}, OLID: "OL1"},
		{Title: "God Emperor of Dune", AuthorNames: []string{"Frank Herbert"}, OLID: "OL4"},
	}

	results := mergeSearchResults(local, external)

	require.Len(t, results, 4)
	// Local rows keep their local order and always win over external
	// duplicates, regardless of catalog ranking.
	assert.Equal(t, "Children of Dune", results[0].Title)
	assert.Equal(t, model.SourceLocal, results[0].Source)
	assert.Equal(t, "Dune", results[1].Title)
	assert.Equal(t, model.SourceLocal, results[1].Source)
	// Unseen external rows keep the catalog's relevance order.
	assert.Equal(t, "Dune Messiah", results[2].Title)
	assert.Equal(t, model.SourceExternal, results[2].Source)
	assert.Equal(t, "God Emperor of Dune", results[3].Title)
}

func TestMergeExternalOnly(t *testing.T) {
	external := []openlibrary.SearchDoc{
		{Title: "Dune", AuthorNames: []string{"Frank Herbert"}, OLID: "OL1", CoverURL: "https://covers.example/1-M.jpg"},
		{Title: "Anonymous Work"},
	}

	results := mergeSearchResults(nil, external)

	require.Len(t, results, 2)
	assert.Equal(t, "Frank Herbert", results[0].AuthorName)
	assert.Equal(t, "https://covers.example/1-M.jpg", results[0].CoverURL)
	assert.Nil(t, results[0].BookID)
	// No author list means the Unknown placeholder, same as local inserts.
	assert.Equal(t, model.UnknownAuthorName, results[1].AuthorName)
}

func TestMergeEmptyBothSides(t *testing.T) {
	results := mergeSearchResults(nil, nil)
	assert.Empty(t, results)
}

func TestIdentityKeys(t *testing.T) {
	withID := localBook("Dune", "Frank Herbert", "OL1")
	assert.Equal(t, "ext:OL1", localIdentityKey(&withID))

	withoutID := localBook("Düne!", "Frank Herbert", "")
	assert.Equal(t, "dune_frank herbert", localIdentityKey(&withoutID))

	doc := openlibrary.SearchDoc{Title: "DUNE", AuthorNames: []string{"Frank Herbert", "Other"}}
	assert.Equal(t, "dune_frank herbert", externalIdentityKey(&doc))
}
