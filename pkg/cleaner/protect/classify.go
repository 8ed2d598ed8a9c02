package protect

import (
	"regexp"
	"strings"
)

// Kind routes a line to its handling for one cleaning pass.
type Kind int

const (
	// Normal lines get the full treatment: redaction, light clean,
	// basic rule pass, then the script gate.
	Normal Kind = iota
	// Table lines pass through verbatim.
	Table
	// MathProtected lines carry a placeholder and only receive a light,
	// math-safe clean.
	MathProtected
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case Table:
		return "table"
	case MathProtected:
		return "math"
	default:
		return "normal"
	}
}

// separatorRe matches markdown table separator rows like |---|:---:|.
var separatorRe = regexp.MustCompile(`^[\s|:-]+$`)

// Classify determines the handling for one line. Checks run in order:
// a pipe/dash separator row, a pipe-delimited table row, a protected
// placeholder, otherwise normal text.
func Classify(line string, p *Protector) Kind {
	stripped := strings.TrimSpace(line)

	if separatorRe.MatchString(stripped) &&
		strings.Contains(stripped, "|") && strings.Contains(stripped, "-") {
		return Table
	}
	if strings.HasPrefix(stripped, "|") && strings.HasSuffix(stripped, "|") {
		return Table
	}
	if p != nil && p.HasPlaceholder(line) {
		return MathProtected
	}
	return Normal
}
