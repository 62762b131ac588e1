package app

import "errors"

var (
	// ErrBookNotFound indicates the ID is not in the library catalog.
	ErrBookNotFound = errors.New("book not found")
)
