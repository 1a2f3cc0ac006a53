package repository

import "errors"

// Sentinel errors shared by all repository implementations. The application
// layer matches on these with errors.Is and maps them to HTTP statuses at
// the handler boundary.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrSlugTaken  = errors.New("slug already taken")
)
