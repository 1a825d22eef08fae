package model

import "errors"

var (
	// ErrAuthorNotFound means neither the local store nor the catalog
	// knows the requested author.
	ErrAuthorNotFound = errors.New("author not found")
)
