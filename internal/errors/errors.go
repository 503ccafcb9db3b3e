package errors

import (
	"fmt"
	"time"
)

// Error types for the symbol navigation engine
type ErrorType string

const (
	// Indexing errors
	ErrorTypeIndexing ErrorType = "indexing"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeSearch   ErrorType = "search"

	// Persistence errors
	ErrorTypePersistence ErrorType = "persistence"
)

// IndexingError represents an error during the indexing process
type IndexingError struct {
	Type        ErrorType
	FilePath    string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewIndexingError creates a new indexing error with context
func NewIndexingError(op string, err error) *IndexingError {
	return &IndexingError{
		Type:       ErrorTypeIndexing,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds file information to the error
func (e *IndexingError) WithFile(path string) *IndexingError {
	e.FilePath = path
	return e
}

// WithRecoverable marks the error as recoverable
func (e *IndexingError) WithRecoverable(recoverable bool) *IndexingError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface
func (e *IndexingError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *IndexingError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable checks if the error can be retried
func (e *IndexingError) IsRecoverable() bool {
	return e.Recoverable
}

// ParseError represents a parsing error for a single file. Parse errors are
// absorbed by the indexer (the file contributes zero definitions) and only
// surface in debug logs.
type ParseError struct {
	Type       ErrorType
	FilePath   string
	Language   string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(path, language string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		FilePath:   path,
		Language:   language,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s (%s): %v", e.FilePath, e.Language, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// SearchError represents a content search failure
type SearchError struct {
	Type       ErrorType
	Pattern    string
	RootPath   string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error
func NewSearchError(pattern, rootPath string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Pattern:    pattern,
		RootPath:   rootPath,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search for %q under %s failed: %v", e.Pattern, e.RootPath, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Underlying
}

// PersistenceError represents a snapshot save/load/delete failure. Version
// or root-path mismatches are not persistence errors; those are reported as
// a rebuild-needed signal, not through this type.
type PersistenceError struct {
	Type       ErrorType
	Operation  string
	Path       string
	Underlying error
	Timestamp  time.Time
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{
		Type:       ErrorTypePersistence,
		Operation:  op,
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Underlying
}
