package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "quotebook-backend/internal/domains/book/model"
	"quotebook-backend/internal/domains/quote/model"
	"quotebook-backend/pkg/database"
)

type fakeQuoteRepo struct {
	inserted    []model.Quote
	listed      []model.QuoteWithBook
	favorites   []model.QuoteWithBook
	searched    []model.QuoteWithBook
	total       int64
	deleted     int64
	updateErr   error
	updatedWith *uuid.UUID

	lastLimit  int
	lastOffset int
	lastQuery  string
	lastIDs    []uuid.UUID
}

func (f *fakeQuoteRepo) InsertBatch(_ context.Context, _ database.Querier, quotes []model.Quote) ([]model.Quote, error) {
	created := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		q.ID = uuid.New()
		created = append(created, q)
	}
	f.inserted = append(f.inserted, created...)
	return created, nil
}

func (f *fakeQuoteRepo) ListByUser(_ context.Context, _ string, limit, offset int) ([]model.QuoteWithBook, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.listed, nil
}

func (f *fakeQuoteRepo) CountByUser(_ context.Context, _ string) (int64, error) {
	return f.total, nil
}

func (f *fakeQuoteRepo) ListFavoritesByUser(_ context.Context, _ string) ([]model.QuoteWithBook, error) {
	return f.favorites, nil
}

func (f *fakeQuoteRepo) SearchByUser(_ context.Context, _ string, sanitizedQuery string) ([]model.QuoteWithBook, error) {
	f.lastQuery = sanitizedQuery
	return f.searched, nil
}

func (f *fakeQuoteRepo) Update(_ context.Context, _ database.Querier, _ string, quoteID uuid.UUID, patch *model.UpdateQuoteRequest, newBookID *uuid.UUID) (*model.Quote, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedWith = newBookID
	q := &model.Quote{ID: quoteID}
	if patch.Text != nil {
		q.Text = *patch.Text
	}
	if newBookID != nil {
		q.BookID = *newBookID
	}
	return q, nil
}

func (f *fakeQuoteRepo) DeleteByUser(_ context.Context, _ string, ids []uuid.UUID) (int64, error) {
	f.lastIDs = ids
	return f.deleted, nil
}

type fakeBooks struct {
	byID      map[uuid.UUID]*bookmodel.Book
	byOLID    map[string]*bookmodel.Book
	lastCover *string
	resolves  int
}

func (f *fakeBooks) GetByID(_ context.Context, _ database.Querier, id uuid.UUID) (*bookmodel.Book, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, bookmodel.ErrBookNotFound
}

func (f *fakeBooks) ResolveByOLID(_ context.Context, _ database.Querier, olid string, fallbackCoverURL *string) (*bookmodel.Book, error) {
	f.resolves++
	f.lastCover = fallbackCoverURL
	if b, ok := f.byOLID[olid]; ok {
		return b, nil
	}
	return nil, bookmodel.ErrBookNotFound
}

func newTestService(repo *fakeQuoteRepo, books *fakeBooks) *QuoteService {
	return &QuoteService{
		repo:  repo,
		books: books,
		runInTx: func(ctx context.Context, fn database.TxFunc) error {
			return fn(pgx.Tx(nil))
		},
	}
}

func TestCreateQuotesWithLocalBook(t *testing.T) {
	bookID := uuid.New()
	repo := &fakeQuoteRepo{}
	books := &fakeBooks{byID: map[uuid.UUID]*bookmodel.Book{
		bookID: {ID: bookID, Title: "Dune"},
	}}
	svc := newTestService(repo, books)

	chapter := "1"
	created, err := svc.CreateQuotes(context.Background(), "user-1", &model.CreateQuotesRequest{
		BookID: &bookID,
		Quotes: []model.QuoteInput{
			{Text: "Fear is the mind-killer.", Chapter: &chapter, Tags: []string{"fear"}},
			{Text: "He who controls the spice controls the universe."},
		},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, q := range created {
		assert.Equal(t, bookID, q.BookID)
		assert.Equal(t, "user-1", q.UserID)
		assert.NotEqual(t, uuid.Nil, q.ID)
	}
	assert.Equal(t, "Fear is the mind-killer.", created[0].Text)
	assert.Zero(t, books.resolves, "explicit book id should not hit the catalog")
}

func TestCreateQuotesImportsBookByOLID(t *testing.T) {
	bookID := uuid.New()
	repo := &fakeQuoteRepo{}
	books := &fakeBooks{byOLID: map[string]*bookmodel.Book{
		"OL123W": {ID: bookID, Title: "Dune"},
	}}
	svc := newTestService(repo, books)

	olid := "OL123W"
	cover := "https://covers.example/8.jpg"
	created, err := svc.CreateQuotes(context.Background(), "user-1", &model.CreateQuotesRequest{
		OpenLibraryID: &olid,
		CoverURL:      &cover,
		Quotes:        []model.QuoteInput{{Text: "A beginning is a very delicate time."}},
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, bookID, created[0].BookID)
	assert.Equal(t, 1, books.resolves)
	require.NotNil(t, books.lastCover)
	assert.Equal(t, cover, *books.lastCover)
}

func TestCreateQuotesRequiresBookRef(t *testing.T) {
	repo := &fakeQuoteRepo{}
	svc := newTestService(repo, &fakeBooks{})

	_, err := svc.CreateQuotes(context.Background(), "user-1", &model.CreateQuotesRequest{
		Quotes: []model.QuoteInput{{Text: "orphan"}},
	})

	assert.ErrorIs(t, err, model.ErrMissingBookRef)
	assert.Empty(t, repo.inserted)
}

func TestCreateQuotesRejectsEmptyBatch(t *testing.T) {
	bookID := uuid.New()
	svc := newTestService(&fakeQuoteRepo{}, &fakeBooks{})

	_, err := svc.CreateQuotes(context.Background(), "user-1", &model.CreateQuotesRequest{
		BookID: &bookID,
	})

	assert.Error(t, err)
}

func TestCreateQuotesUnknownBook(t *testing.T) {
	bookID := uuid.New()
	repo := &fakeQuoteRepo{}
	svc := newTestService(repo, &fakeBooks{})

	_, err := svc.CreateQuotes(context.Background(), "user-1", &model.CreateQuotesRequest{
		BookID: &bookID,
		Quotes: []model.QuoteInput{{Text: "never stored"}},
	})

	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
	assert.Empty(t, repo.inserted)
}

func TestGetUserQuotesPagination(t *testing.T) {
	repo := &fakeQuoteRepo{total: 42}
	svc := newTestService(repo, &fakeBooks{})

	_, total, err := svc.GetUserQuotes(context.Background(), "user-1", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Equal(t, 5, repo.lastLimit)
	assert.Equal(t, 10, repo.lastOffset)
}

func TestGetUserQuotesDefaults(t *testing.T) {
	repo := &fakeQuoteRepo{}
	svc := newTestService(repo, &fakeBooks{})

	_, _, err := svc.GetUserQuotes(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultPerPage, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, _, err = svc.GetUserQuotes(context.Background(), "user-1", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, repo.lastLimit)
}

func TestSearchUserQuotesSanitizesQuery(t *testing.T) {
	repo := &fakeQuoteRepo{searched: []model.QuoteWithBook{{Text: "hit"}}}
	svc := newTestService(repo, &fakeBooks{})

	results, err := svc.SearchUserQuotes(context.Background(), "user-1", "  épice mélange!!  ")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "épice mélange", repo.lastQuery)
}

func TestSearchUserQuotesEmptyAfterSanitize(t *testing.T) {
	repo := &fakeQuoteRepo{searched: []model.QuoteWithBook{{Text: "should not appear"}}}
	svc := newTestService(repo, &fakeBooks{})

	results, err := svc.SearchUserQuotes(context.Background(), "user-1", "!!! ???")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, repo.lastQuery, "repository should not be queried")
}

func TestUpdateUserQuoteReassignsBook(t *testing.T) {
	newBookID := uuid.New()
	repo := &fakeQuoteRepo{}
	books := &fakeBooks{byOLID: map[string]*bookmodel.Book{
		"OL9W": {ID: newBookID, Title: "Messiah"},
	}}
	svc := newTestService(repo, books)

	olid := "OL9W"
	updated, err := svc.UpdateUserQuote(context.Background(), "user-1", uuid.New(), &model.UpdateQuoteRequest{
		OpenLibraryID: &olid,
	})

	require.NoError(t, err)
	assert.Equal(t, newBookID, updated.BookID)
	require.NotNil(t, repo.updatedWith)
	assert.Equal(t, newBookID, *repo.updatedWith)
}

func TestUpdateUserQuoteWithoutBookRef(t *testing.T) {
	repo := &fakeQuoteRepo{}
	svc := newTestService(repo, &fakeBooks{})

	text := "revised"
	updated, err := svc.UpdateUserQuote(context.Background(), "user-1", uuid.New(), &model.UpdateQuoteRequest{
		Text: &text,
	})

	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)
	assert.Nil(t, repo.updatedWith)
}

func TestUpdateUserQuoteNotFound(t *testing.T) {
	repo := &fakeQuoteRepo{updateErr: model.ErrQuoteNotFound}
	svc := newTestService(repo, &fakeBooks{})

	text := "nope"
	_, err := svc.UpdateUserQuote(context.Background(), "user-1", uuid.New(), &model.UpdateQuoteRequest{
		Text: &text,
	})

	assert.ErrorIs(t, err, model.ErrQuoteNotFound)
}

func TestDeleteUserQuotes(t *testing.T) {
	repo := &fakeQuoteRepo{deleted: 2}
	svc := newTestService(repo, &fakeBooks{})

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	n, err := svc.DeleteUserQuotes(context.Background(), "user-1", ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, ids, repo.lastIDs)

	_, err = svc.DeleteUserQuotes(context.Background(), "user-1", nil)
	assert.ErrorIs(t, err, model.ErrNoQuoteIDs)
}
