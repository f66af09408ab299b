package domain

import "fmt"

// InvalidInputError means the app identifier was empty after trimming.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NotFoundError means the store has no listing for the identifier.
type NotFoundError struct {
	AppID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("app %q not found", e.AppID)
}

// MetadataFetchError wraps a failed app-details fetch.
type MetadataFetchError struct {
	AppID string
	Err   error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("fetch app details for %q: %v", e.AppID, e.Err)
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }

// ReviewFetchError wraps a failed review fetch.
type ReviewFetchError struct {
	AppID string
	Err   error
}

func (e *ReviewFetchError) Error() string {
	return fmt.Sprintf("fetch reviews for %q: %v", e.AppID, e.Err)
}

func (e *ReviewFetchError) Unwrap() error { return e.Err }

// DataShapeError means a raw review was missing a required field.
type DataShapeError struct {
	Index int
	Field string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("raw review %d lacks %s field", e.Index, e.Field)
}

// EmptyDatasetError means statistics were requested over zero reviews.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "no reviews to summarize"
}

// ExportError wraps a filesystem failure while writing artifacts.
// Files written before the failure remain on disk.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
