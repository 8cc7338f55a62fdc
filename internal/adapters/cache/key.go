package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mikey/news-credibility/internal/core"
)

const keyPrefix = "news-credibility:v1:"

// Key derives the cache key of a classification from the model and the exact
// classifier input
func Key(model, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func clone(result *core.ClassificationResult) *core.ClassificationResult {
	if result == nil {
		return nil
	}
	out := *result
	out.Scores = append(out.Scores[:0:0], result.Scores...)
	return &out
}
