package fingerprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: "D41D8CD98F00B204E9800998ECF8427E"},
		{name: "hello", content: "hello", want: "5D41402ABC4B2A76B9719D911017C592"},
		{name: "pangram", content: "The quick brown fox jumps over the lazy dog", want: "9E107D9D372BB6826BD81D3542A419D6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, Size)
			assert.Equal(t, got, Of(tt.content), "fingerprint must be deterministic")
		})
	}
}

func TestOf_UsesUTF8Bytes(t *testing.T) {
	s := "naïve café 日本語"
	assert.Equal(t, OfBytes([]byte(s)), Of(s))
	assert.NotEqual(t, Of("naive"), Of("naïve"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Of("anything")))
	assert.False(t, Valid(""))
	assert.False(t, Valid(strings.ToLower(Of("hello"))), "lowercase hex is not a fingerprint")
	assert.False(t, Valid(Of("hello")[:Size-1]))
	assert.False(t, Valid(strings.Repeat("G", Size)))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(Of("hello"), "hello"))
	assert.False(t, Matches(Of("hello"), "hello "))
}
