package models

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateResource = errors.New("resource already exists")
	ErrNotFound          = errors.New("resource not found")
	// ErrAmbiguousMatch is returned when a lookup expected to match a single
	// record matches several.
	ErrAmbiguousMatch = errors.New("more than one record matches")
)
