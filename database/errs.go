package database

import "errors"

var (
	ErrNotInitialized   = errors.New("database: not initialized")
	ErrBookmarkExists   = errors.New("database: bookmark already exists")
	ErrBookmarkNotFound = errors.New("database: bookmark not found")
)
