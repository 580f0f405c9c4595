package model

import (
	"unicode/utf8"

	"corpusapi/internal/fingerprint"
)

// PreviewLength is the number of code points kept in a DocumentPreview.
const PreviewLength = 100

// Document is one stored text. It is immutable once persisted and its
// Fingerprint is always the fingerprint of Content.
type Document struct {
	Fingerprint string `json:"fingerprint"`
	Length      int    `json:"length"`
	Content     string `json:"content"`
}

// NewDocument builds a Document from content, deriving fingerprint and length.
func NewDocument(content string) Document {
	return Document{
		Fingerprint: fingerprint.Of(content),
		Length:      Length(content),
		Content:     content,
	}
}

// DocumentPreview is the listing projection of a Document.
type DocumentPreview struct {
	Fingerprint string `json:"fingerprint"`
	Length      int    `json:"length"`
	Preview     string `json:"preview"`
}

// Preview derives the listing projection of d.
func (d Document) Preview() DocumentPreview {
	return DocumentPreview{
		Fingerprint: d.Fingerprint,
		Length:      d.Length,
		Preview:     Truncate(d.Content, PreviewLength),
	}
}

// Length returns the number of code points in s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first n code points of s. Multi-byte characters are
// never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ComparisonResult holds both similarity metrics for a pair of documents.
type ComparisonResult struct {
	SimpleSimilarity    float64 `json:"simple_similarity"`
	LevenshteinDistance int     `json:"levenshtein_distance"`
}
