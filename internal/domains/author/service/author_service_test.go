package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotebook-backend/internal/domains/author/model"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/pkg/database"
)

type fakeAuthorRepo struct {
	byOLID map[string]*model.Author
	// conflictWinner simulates a concurrent insert: Insert reports a
	// conflict and the winner becomes visible for the re-read.
	conflictWinner *model.Author
	inserts        int
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{byOLID: map[string]*model.Author{}}
}

func (f *fakeAuthorRepo) GetByOLID(_ context.Context, _ database.Querier, olid string) (*model.Author, error) {
	if a, ok := f.byOLID[olid]; ok {
		return a, nil
	}
	return nil, model.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) Insert(_ context.Context, _ database.Querier, a *model.Author) (*model.Author, bool, error) {
	f.inserts++
	if f.conflictWinner != nil {
		f.byOLID[*f.conflictWinner.OpenLibraryID] = f.conflictWinner
		return nil, false, nil
	}

	created := *a
	created.ID = uuid.New()
	f.byOLID[*a.OpenLibraryID] = &created
	return &created, true, nil
}

type fakeAuthorCatalog struct {
	authors map[string]*openlibrary.Author
	err     error
	calls   int
}

func (f *fakeAuthorCatalog) GetAuthor(_ context.Context, olid string) (*openlibrary.Author, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.authors[olid]; ok {
		return a, nil
	}
	return nil, openlibrary.ErrNotFound
}

func TestFindOrCreateReturnsExistingWithoutCatalogCall(t *testing.T) {
	repo := newFakeAuthorRepo()
	olid := "OL2162284A"
	existing := &model.Author{ID: uuid.New(), Name: "Frank Herbert", OpenLibraryID: &olid}
	repo.byOLID[olid] = existing

	catalog := &fakeAuthorCatalog{}
	svc := NewService(repo, catalog)

	got, err := svc.FindOrCreateByOLID(context.Background(), nil, olid)
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	assert.Zero(t, catalog.calls, "existing author must not trigger a catalog fetch")
	assert.Zero(t, repo.inserts)
}

func TestFindOrCreateImportsFromCatalog(t *testing.T) {
	repo := newFakeAuthorRepo()
	catalog := &fakeAuthorCatalog{
		authors: map[string]*openlibrary.Author{
			"OL2162284A": {
				Name:       "Frank Herbert",
				BirthDate:  "8 October 1920",
				PictureURL: "https://covers.openlibrary.org/a/olid/OL2162284A-L.jpg",
			},
		},
	}
	svc := NewService(repo, catalog)

	got, err := svc.FindOrCreateByOLID(context.Background(), nil, "OL2162284A")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", got.Name)
	require.NotNil(t, got.OpenLibraryID)
	assert.Equal(t, "OL2162284A", *got.OpenLibraryID)
	require.NotNil(t, got.Born)
	assert.Equal(t, "8 October 1920", *got.Born)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, 1, repo.inserts)
}

func TestFindOrCreateCatalogFailureIsNotFound(t *testing.T) {
	repo := newFakeAuthorRepo()
	catalog := &fakeAuthorCatalog{err: openlibrary.ErrUnavailable}
	svc := NewService(repo, catalog)

	_, err := svc.FindOrCreateByOLID(context.Background(), nil, "OL404A")
	require.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.ErrorContains(t, err, "OL404A")
}

func TestFindOrCreateRecoversFromInsertConflict(t *testing.T) {
	repo := newFakeAuthorRepo()
	olid := "OL2162284A"
	winner := &model.Author{ID: uuid.New(), Name: "Frank Herbert", OpenLibraryID: &olid}
	repo.conflictWinner = winner

	catalog := &fakeAuthorCatalog{
		authors: map[string]*openlibrary.Author{
			olid: {Name: "Frank Herbert"},
		},
	}
	svc := NewService(repo, catalog)

	got, err := svc.FindOrCreateByOLID(context.Background(), nil, olid)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID, "conflict must resolve to the winning row")
}
