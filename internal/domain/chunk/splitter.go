// Package chunk splits normalized document text into overlapping,
// prompt-sized segments.
package chunk

import (
	"strings"
	"unicode/utf8"

	"github.com/legalens/docuverify/internal/domain"
)

// Preferred split points, tried in order. A chunk boundary lands on the
// latest occurrence of the first separator present in the window; when none
// fits, the text is cut mid-word.
var separators = []string{"\n\n", "\n", " "}

// Splitter packs text into chunks of at most size runes, with consecutive
// chunks sharing overlap runes so context spanning a boundary is kept.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter. Non-positive arguments fall back to the defaults
// (2000-rune chunks, 200-rune overlap).
func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = 2000
	}
	if overlap <= 0 || overlap >= size {
		overlap = size / 10
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split cleans text of NUL bytes and surrounding whitespace, then cuts it
// into ordered overlapping chunks. Text that is empty after cleaning yields
// domain.ErrEmptyDocument; any non-empty text yields at least one chunk.
func (s *Splitter) Split(text string) ([]domain.Chunk, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\x00", ""))
	if cleaned == "" {
		return nil, domain.ErrEmptyDocument
	}

	runes := []rune(cleaned)
	if len(runes) <= s.size {
		return []domain.Chunk{{Text: cleaned}}, nil
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			chunks = append(chunks, domain.Chunk{Text: string(runes[start:])})
			break
		}

		cut := s.findCut(runes, start, end)
		chunks = append(chunks, domain.Chunk{Text: string(runes[start:cut])})

		next := cut - s.overlap
		if next <= start {
			// Chunk shorter than the overlap; skip overlapping to keep progress.
			next = cut
		}
		start = next
	}

	return chunks, nil
}

// findCut returns the rune index to end the chunk starting at start. It moves
// the boundary back from end to just after the latest preferred separator in
// the window, or keeps the hard cut at end when no separator occurs. A cut
// that would not advance past the previous chunk's overlap is rejected, so a
// separator sitting inside the shared region cannot produce a chunk the next
// window already contains.
func (s *Splitter) findCut(runes []rune, start, end int) int {
	window := string(runes[start:end])
	for _, sep := range separators {
		i := strings.LastIndex(window, sep)
		if i <= 0 {
			continue
		}
		cut := start + utf8.RuneCountInString(window[:i+len(sep)])
		if cut-start > s.overlap {
			return cut
		}
	}
	return end
}
