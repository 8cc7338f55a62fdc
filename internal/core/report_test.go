package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReport_Misleading(t *testing.T) {
	v := NewVerdict(Selection{Label: "FAKE", Score: 0.81, Category: CategoryMisleading}, 3)
	report := RenderReport(v)

	assert.Contains(t, report, "🚨 POTENTIALLY MISLEADING")
	assert.Contains(t, report, "**Confidence Level:** 81.0%")
	assert.Contains(t, report, "**Similar Patterns Found:** 3 matches in our database")
	assert.Contains(t, report, "appears **suspicious**")
	assert.Contains(t, report, "⚠️ RECOMMENDATIONS")
	assert.Contains(t, report, "Use fact-checking sites")
	assert.NotContains(t, report, "BEST PRACTICES")
	assert.Contains(t, report, "Digital Literacy Tip")
}

func TestRenderReport_Credible(t *testing.T) {
	v := NewVerdict(Selection{Label: "LABEL_1", Score: 0.92, Category: CategoryCredible}, 0)
	report := RenderReport(v)

	assert.Contains(t, report, "✅ LIKELY CREDIBLE")
	assert.Contains(t, report, "**Confidence Level:** 92.0%")
	assert.Contains(t, report, "0 matches in our database")
	assert.Contains(t, report, "appears **credible**")
	assert.Contains(t, report, "💡 BEST PRACTICES")
	assert.NotContains(t, report, "RECOMMENDATIONS")
}

func TestRenderReport_SingleMatch(t *testing.T) {
	v := NewVerdict(Selection{Label: "REAL", Score: 0.6, Category: CategoryCredible}, 1)
	assert.Contains(t, RenderReport(v), "1 match in our database")
}

func TestRenderReport_Deterministic(t *testing.T) {
	v := NewVerdict(Selection{Label: "FAKE", Score: 0.5555, Category: CategoryMisleading}, 2)
	first := RenderReport(v)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RenderReport(v))
	}
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "92.0%", FormatConfidence(0.92))
	assert.Equal(t, "81.0%", FormatConfidence(0.81))
	assert.Equal(t, "100.0%", FormatConfidence(1))
	assert.Equal(t, "0.0%", FormatConfidence(0))
	assert.Equal(t, "55.6%", FormatConfidence(0.556))
}

func TestRenderError(t *testing.T) {
	empty := RenderError(&ValidationError{Reason: ReasonEmpty, MinLength: 10})
	assert.Equal(t, "❌ Please enter some news content to analyze.", empty)

	wrapped := fmt.Errorf("analyze: %w", &ValidationError{Reason: ReasonTooShort, MinLength: 10})
	assert.Contains(t, RenderError(wrapped), "at least 10 characters")

	cerr := &ClassificationError{Model: "m", Err: errors.New("connection refused")}
	msg := RenderError(cerr)
	assert.Equal(t, "❌ Error analyzing content: connection refused\n\nPlease try again with different text.", msg)
	assert.NotContains(t, msg, "CREDIBLE")
	assert.NotContains(t, msg, "MISLEADING")
}
