// Package compare implements the similarity metrics used to compare two
// stored documents. All functions are pure and safe for concurrent use.
//
// A "character" is a Unicode code point: both metrics operate on the rune
// sequence of their inputs, so a multi-byte character counts as one unit.
package compare

import (
	"context"

	"corpusapi/internal/model"
)

// SimpleSimilarity returns the fraction of positions holding the same
// character in a and b, divided by the length of the longer input.
// Two empty inputs are identical and score 1.0.
func SimpleSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}

	same := 0
	for i := range min(len(ra), len(rb)) {
		if ra[i] == rb[i] {
			same++
		}
	}
	return float64(same) / float64(longest)
}

// LevenshteinDistance returns the minimum number of single-character
// insertions, deletions and substitutions turning a into b.
func LevenshteinDistance(a, b string) int {
	d, _ := levenshtein(context.Background(), []rune(a), []rune(b))
	return d
}

// LevenshteinDistanceContext is LevenshteinDistance that stops early when ctx
// is done. The context is checked once per row.
func LevenshteinDistanceContext(ctx context.Context, a, b string) (int, error) {
	return levenshtein(ctx, []rune(a), []rune(b))
}

// levenshtein keeps two rows over the shorter input, so memory is
// O(min(n, m)) while the result equals the full-grid recurrence.
func levenshtein(ctx context.Context, ra, rb []rune) (int, error) {
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra), nil
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)], nil
}

// Compare computes both metrics for a and b.
func Compare(ctx context.Context, a, b string) (model.ComparisonResult, error) {
	dist, err := LevenshteinDistanceContext(ctx, a, b)
	if err != nil {
		return model.ComparisonResult{}, err
	}
	return model.ComparisonResult{
		SimpleSimilarity:    SimpleSimilarity(a, b),
		LevenshteinDistance: dist,
	}, nil
}
