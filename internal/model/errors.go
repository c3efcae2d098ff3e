package model

import "errors"

var (
	// ErrNotAPolicyDocument is returned when the classifier rejects the input text
	ErrNotAPolicyDocument = errors.New("not an insurance policy document")

	// ErrEmptyInput is returned for blank text; it is always reported together with ErrNotAPolicyDocument
	ErrEmptyInput = errors.New("empty input text")

	// ErrSummarizationUnavailable marks a failed or timed out summarizer backend
	ErrSummarizationUnavailable = errors.New("summarization unavailable")

	// ErrMissingPriorContext is returned when a rejection is analyzed without policy text
	ErrMissingPriorContext = errors.New("no policy text available for rejection analysis")

	// ErrInvalidRequest is returned for analysis requests missing required fields
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnsupportedFormat is returned by the loader for formats it cannot decode
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDocumentTooLarge is returned by the loader when a document exceeds loader.max_bytes
	ErrDocumentTooLarge = errors.New("document too large")
)
