package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	headlineCredible   = "✅ LIKELY CREDIBLE"
	headlineMisleading = "🚨 POTENTIALLY MISLEADING"
)

const misleadingAdvice = `
### ⚠️ RECOMMENDATIONS

• **Verify with reputable sources** like AP News, Reuters, or BBC
• **Check the publication date** - old news can be repurposed
• **Look for official statements** from relevant authorities
• **Reverse image search** any accompanying photos
• **Use fact-checking sites** like Snopes or FactCheck.org
`

const credibleAdvice = `
### 💡 BEST PRACTICES

• **Cross-reference** with multiple reliable sources
• **Check author credentials** and publication history
• **Be aware of potential biases** in the reporting
• **Look for supporting evidence** and citations
• **Consider the tone** - credible news is typically neutral
`

const literacyTip = `
---

**🎓 Digital Literacy Tip:** Always approach online information with healthy skepticism and verify before sharing.
`

// Headline returns the human readable headline for a category
func Headline(c Category) string {
	if c == CategoryCredible {
		return headlineCredible
	}
	return headlineMisleading
}

// FormatConfidence renders a score in [0,1] as a percentage with one decimal
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// RenderReport renders the markdown report for a verdict. The output depends
// only on v.
func RenderReport(v Verdict) string {
	var b strings.Builder

	b.WriteString("\n## 📊 ANALYSIS RESULTS\n\n")
	fmt.Fprintf(&b, "### %s\n\n", Headline(v.Category))
	fmt.Fprintf(&b, "**Confidence Level:** %s  \n", FormatConfidence(v.Confidence))
	fmt.Fprintf(&b, "**Similar Patterns Found:** %d %s in our database\n", v.MatchCount, pluralMatches(v.MatchCount))

	appearance := "suspicious"
	if v.Category == CategoryCredible {
		appearance = "credible"
	}
	b.WriteString("\n### 🔍 ANALYSIS\n")
	fmt.Fprintf(&b, "This content appears **%s** based on linguistic patterns and comparison with our database of verified news examples.\n", appearance)

	if v.Category == CategoryCredible {
		b.WriteString(credibleAdvice)
	} else {
		b.WriteString(misleadingAdvice)
	}
	b.WriteString(literacyTip)

	return b.String()
}

// RenderError renders the text shown instead of a report when analysis fails
func RenderError(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.UserMessage()
	}

	cause := err
	var cerr *ClassificationError
	if errors.As(err, &cerr) && cerr.Err != nil {
		cause = cerr.Err
	}
	return fmt.Sprintf("❌ Error analyzing content: %v\n\nPlease try again with different text.", cause)
}

func pluralMatches(n int) string {
	if n == 1 {
		return "match"
	}
	return "matches"
}
