package chatModel

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("a request is already in flight")
	ErrSessionNotFound = errors.New("session not found")
)

// ExtractionError means the PDF could not be read. The upload is rejected.
type ExtractionError struct {
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("failed to extract text from PDF (page %d): %v", e.Page, e.Err)
	}
	return fmt.Sprintf("failed to extract text from PDF: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ValidationError rejects an upload before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ProviderError is any transport, HTTP or decoding failure from a backend.
type ProviderError struct {
	Provider   ProviderKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
