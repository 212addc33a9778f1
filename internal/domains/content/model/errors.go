package model

import "errors"

// Error codes
const (
	ErrCodeNotFound     = "CNT001"
	ErrCodeEmptyQuery   = "CNT002"
	ErrCodeUnavailable  = "CNT003"
	ErrCodeInvalidInput = "CNT004"
)

var (
	// ErrNotFound is returned by detail reads when no document matches the slug
	ErrNotFound = errors.New("content not found")

	// ErrEmptyQuery is returned by Search for a blank query
	ErrEmptyQuery = errors.New("search query is required")

	// ErrInvalidCategory is returned for an unknown timeline category
	ErrInvalidCategory = errors.New("invalid timeline category")
)
