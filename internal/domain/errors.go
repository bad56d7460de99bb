package domain

import "errors"

var (
	// ErrDocumentNotFound signals an unknown file id.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNoFile signals a multipart upload without a file part.
	ErrNoFile = errors.New("no file provided")
	// ErrUnprocessableDocument signals content that cannot be decoded to text.
	ErrUnprocessableDocument = errors.New("unprocessable document")
	// ErrEmptyDocument signals a document with no text left after cleaning.
	ErrEmptyDocument = errors.New("empty document text")
	// ErrQuotaExceeded signals an exhausted completion API quota.
	ErrQuotaExceeded = errors.New("completion quota exceeded")
	// ErrRateLimited signals a completion API rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrMalformedCompletion signals an unexpected completion response shape.
	ErrMalformedCompletion = errors.New("malformed completion response")
)
