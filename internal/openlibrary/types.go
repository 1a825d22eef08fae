package openlibrary

import (
	"encoding/json"
	"strings"
)

// Author is the catalog view of an author.
type Author struct {
	Name       string
	BirthDate  string
	PictureURL string
}

// Book is the catalog view of a single edition/work.
type Book struct {
	Title       string
	Description string
	CoverIDs    []int64
	AuthorOLIDs []string
}

// SearchDoc is one result of a free-text catalog search.
type SearchDoc struct {
	Title       string
	AuthorNames []string
	OLID        string
	CoverURL    string
}

// Raw API payloads.

type apiAuthor struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

type apiBook struct {
	Title       string   `json:"title"`
	Description olText   `json:"description"`
	Covers      []int64  `json:"covers"`
	Authors     []struct {
		Author struct {
			Key string `json:"key"`
		} `json:"author"`
	} `json:"authors"`
}

type apiSearchResponse struct {
	NumFound int            `json:"numFound"`
	Docs     []apiSearchDoc `json:"docs"`
}

type apiSearchDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	AuthorKey  []string `json:"author_key"`
	CoverID    int64    `json:"cover_i"`
	Key        string   `json:"key"`
}

// olText handles OpenLibrary's two description encodings: a bare string or
// a {"type": ..., "value": ...} object.
type olText string

func (t *olText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = olText(s)
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = olText(obj.Value)
	return nil
}

// extractOLID pulls the bare identifier out of a key like "/works/OL45883W"
// or "/authors/OL2162284A". Returns "" when the key has no id segment.
func extractOLID(key string) string {
	key = strings.TrimSuffix(key, "/")
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return key
	}
	return key[idx+1:]
}
