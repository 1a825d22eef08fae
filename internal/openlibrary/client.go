// Package openlibrary is the typed client for the OpenLibrary catalog.
// All configuration (base URLs, timeout, rate) comes in through the
// constructor so tests can point it at a local server.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"quotebook-backend/internal/config"
)

var (
	// ErrNotFound means the catalog does not know the requested id.
	ErrNotFound = errors.New("openlibrary: resource not found")
	// ErrUnavailable means the catalog could not be reached or answered
	// with a protocol-level failure (including request deadline expiry).
	ErrUnavailable = errors.New("openlibrary: upstream unavailable")
)

// searchFields is the projection requested from the search endpoint.
const searchFields = "author_name,author_key,cover_i,key,title"

type Client struct {
	cfg     config.OpenLibraryConfig
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg config.OpenLibraryConfig) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsPerSec),
	}
}

// GetAuthor fetches author data by OpenLibrary id.
func (c *Client) GetAuthor(ctx context.Context, olid string) (*Author, error) {
	var raw apiAuthor
	if err := c.getJSON(ctx, fmt.Sprintf("%s/authors/%s.json", c.cfg.BaseURL, olid), &raw); err != nil {
		return nil, err
	}

	return &Author{
		Name:       raw.Name,
		BirthDate:  raw.BirthDate,
		PictureURL: fmt.Sprintf("%s/a/olid/%s-L.jpg", c.cfg.CoversBaseURL, olid),
	}, nil
}

// GetBook fetches book data by OpenLibrary id. The referenced author ids are
// extracted from the nested author keys; a book may reference zero authors.
func (c *Client) GetBook(ctx context.Context, olid string) (*Book, error) {
	var raw apiBook
	if err := c.getJSON(ctx, fmt.Sprintf("%s/books/%s.json", c.cfg.BaseURL, olid), &raw); err != nil {
		return nil, err
	}

	book := &Book{
		Title:       raw.Title,
		Description: string(raw.Description),
		CoverIDs:    raw.Covers,
	}
	for _, a := range raw.Authors {
		if id := extractOLID(a.Author.Key); id != "" {
			book.AuthorOLIDs = append(book.AuthorOLIDs, id)
		}
	}

	return book, nil
}

// CoverURL builds the medium cover image URL for a cover id.
func (c *Client) CoverURL(coverID int64) string {
	return fmt.Sprintf("%s/b/id/%d-M.jpg", c.cfg.CoversBaseURL, coverID)
}

// Search runs a free-text search. Failures degrade to an empty result
// instead of an error; the aggregate search must keep working when the
// catalog is down.
func (c *Client) Search(ctx context.Context, query string, limit int) []SearchDoc {
	u := fmt.Sprintf("%s/search.json?q=%s&fields=%s", c.cfg.BaseURL, url.QueryEscape(query), url.QueryEscape(searchFields))
	if limit > 0 {
		u += fmt.Sprintf("&limit=%d", limit)
	}

	var raw apiSearchResponse
	if err := c.getJSON(ctx, u, &raw); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("openlibrary search failed, returning empty result")
		return nil
	}

	docs := make([]SearchDoc, 0, len(raw.Docs))
	for _, d := range raw.Docs {
		doc := SearchDoc{
			Title:       d.Title,
			AuthorNames: d.AuthorName,
			OLID:        extractOLID(d.Key),
		}
		if d.CoverID != 0 {
			doc.CoverURL = c.CoverURL(d.CoverID)
		}
		docs = append(docs, doc)
	}
	return docs
}

// getJSON performs a rate-limited GET and decodes the body. 404 maps to
// ErrNotFound, every other failure to ErrUnavailable.
func (c *Client) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
