package retrieval

import (
	"regexp"
	"strings"
)

// Default chunking window and overlap, in words.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

var (
	pageMarker = regexp.MustCompile(`--- Page \d+ ---`)
	// Anything that is not a letter, digit, whitespace or common punctuation.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?\-()/%$]`)
)

// CleanText normalises extracted document text: whitespace runs collapse to a
// single space, page markers are dropped and unusual symbols become spaces.
func CleanText(text string) string {
	text = collapseSpace(text)
	text = pageMarker.ReplaceAllString(text, "")
	text = disallowedChars.ReplaceAllString(text, " ")
	return collapseSpace(text)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitChunks splits text into overlapping word windows. Each window holds up
// to size words and starts size-overlap words after the previous one.
func SplitChunks(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	words := strings.Fields(text)
	step := size - overlap

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
