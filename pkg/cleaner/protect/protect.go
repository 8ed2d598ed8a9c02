// Package protect keeps inline math and code notation out of reach of the
// cleaning transforms. Spans are swapped for unique placeholders before
// cleaning and substituted back afterwards, and lines carrying a
// placeholder are routed to math-safe handling by the classifier.
package protect

import (
	"fmt"
	"regexp"
	"strings"
)

// Span patterns, highest priority first. All are strictly single-line.
var spanPatterns = []*regexp.Regexp{
	regexp.MustCompile("`[^\n]*?`"),        // backtick code span
	regexp.MustCompile(`\$\$[^\n]*?\$\$`),  // display math block
	regexp.MustCompile(`\$[^\n$]+\$`),      // inline math span
}

const placeholderBase = "__MATH_"

// Protector records placeholder->original mappings for one document.
// Create one per Protect/Restore round trip; it is not safe for
// concurrent use, and the orchestrator never shares one across documents.
type Protector struct {
	prefix  string
	counter int
	spans   []span
}

type span struct {
	placeholder string
	original    string
}

// NewProtector creates an empty document-scoped protector.
func NewProtector() *Protector {
	return &Protector{prefix: placeholderBase}
}

// Protect scans the whole document in fixed priority order (backtick
// spans, then display math, then inline math), replacing each match
// with a sequential placeholder. The placeholder prefix is chosen so it
// does not occur in the input; placeholders never collide with
// legitimate content. Protected spans are never rescanned.
func (p *Protector) Protect(text string) string {
	// Uniquify the prefix against the input.
	for n := 1; strings.Contains(text, p.prefix); n++ {
		p.prefix = fmt.Sprintf("__MATH%d_", n)
	}

	for _, re := range spanPatterns {
		text = re.ReplaceAllStringFunc(text, func(match string) string {
			placeholder := fmt.Sprintf("%s%d__", p.prefix, p.counter)
			p.counter++
			p.spans = append(p.spans, span{placeholder: placeholder, original: match})
			return placeholder
		})
	}
	return text
}

// Restore substitutes every recorded placeholder with its original text.
// Each inserted span has exactly one matching restoration; the mapping is
// consumed in full.
func (p *Protector) Restore(text string) string {
	for _, s := range p.spans {
		text = strings.Replace(text, s.placeholder, s.original, 1)
	}
	return text
}

// HasPlaceholder reports whether the line carries a protected span and
// therefore needs math-safe handling.
func (p *Protector) HasPlaceholder(line string) bool {
	return len(p.spans) > 0 && strings.Contains(line, p.prefix)
}

// Count returns the number of protected spans.
func (p *Protector) Count() int {
	return len(p.spans)
}
