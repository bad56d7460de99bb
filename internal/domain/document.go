package domain

import "time"

// StoredDocument is an uploaded file held by the document store.
// Content is immutable once the document is stored.
type StoredDocument struct {
	ID          string
	Filename    string
	ContentType string
	Size        int64
	UploadedAt  time.Time
	Content     []byte
}
