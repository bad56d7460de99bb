// Package textnorm decodes raw uploaded bytes into text for the chat pipeline.
package textnorm

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/legalens/docuverify/internal/domain"
)

// Decode converts raw document bytes to a text string. Valid UTF-8 is
// returned as-is; anything else falls back to Latin-1, which accepts
// arbitrary byte values. Empty input decodes to the empty string.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("latin-1 decode: %v: %w", err, domain.ErrUnprocessableDocument)
	}
	return string(decoded), nil
}
