package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"corpusapi/internal/fingerprint"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("hello")

	assert.Equal(t, fingerprint.Of("hello"), doc.Fingerprint)
	assert.Equal(t, 5, doc.Length)
	assert.Equal(t, "hello", doc.Content)
}

func TestNewDocument_CountsCodePoints(t *testing.T) {
	doc := NewDocument("日本語")
	assert.Equal(t, 3, doc.Length)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "abc", n: 5, want: "abc"},
		{name: "exact limit", in: "abcde", n: 5, want: "abcde"},
		{name: "longer than limit", in: "abcdef", n: 5, want: "abcde"},
		{name: "multi-byte kept whole", in: "héllo wörld", n: 2, want: "hé"},
		{name: "cjk", in: "日本語のテキスト", n: 3, want: "日本語"},
		{name: "zero", in: "abc", n: 0, want: ""},
		{name: "empty", in: "", n: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestDocument_Preview(t *testing.T) {
	long := strings.Repeat("é", PreviewLength+20)
	doc := NewDocument(long)

	p := doc.Preview()

	assert.Equal(t, doc.Fingerprint, p.Fingerprint)
	assert.Equal(t, PreviewLength+20, p.Length)
	assert.Equal(t, PreviewLength, Length(p.Preview))
	assert.True(t, strings.HasPrefix(long, p.Preview))
}
