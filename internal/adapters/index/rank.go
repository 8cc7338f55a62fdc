// Package index holds the read-only vector stores backing the similar-pattern
// lookup, and the ranking helpers the brute-force stores share.
package index

import (
	"math"
	"sort"

	"github.com/mikey/news-credibility/internal/core"
)

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or the dimensions differ
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// TopK orders docs by descending score, keeping insertion order among
// equal scores, and trims the result to k
func TopK(docs []core.RetrievedDocument, k int) []core.RetrievedDocument {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Score > docs[j].Score
	})
	if k >= 0 && len(docs) > k {
		docs = docs[:k]
	}
	return docs
}
