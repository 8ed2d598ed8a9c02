package rules

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/indusnlp/shuddhi/internal/logger"
	"github.com/indusnlp/shuddhi/pkg/refdata"
)

// Config controls the engine's preprocessing and construction policy.
type Config struct {
	// CleanHTML extracts plain text from HTML markup before any rule runs.
	CleanHTML bool

	// FilterPunctuated keeps only lines ending in a configured
	// punctuation mark. Runs after the whitespace trim, before the chain.
	FilterPunctuated bool

	// Punctuations are the accepted line terminators for FilterPunctuated.
	// Defaults to the embedded Hindi punctuation set.
	Punctuations []string

	// UnknownOp decides whether an unknown operation name fails
	// construction or is skipped with a warning.
	UnknownOp UnknownOpPolicy
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		UnknownOp: UnknownOpSkip,
	}
}

// Engine applies an ordered chain of operations to a text blob.
// Built once from a rule chain; immutable and safe for concurrent use.
type Engine struct {
	chain   []compiledRule
	cfg     Config
	punctRe *regexp.Regexp
}

// New validates and compiles a rule chain. Malformed patterns, missing
// list files and bad arguments are fatal; unknown operation names follow
// cfg.UnknownOp. If cfg is nil, DefaultConfig() is used.
func New(chain []Rule, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	e := &Engine{cfg: *cfg}

	for _, r := range chain {
		c, err := compile(r)
		if err != nil {
			if errors.Is(err, ErrUnknownOp) && cfg.UnknownOp == UnknownOpSkip {
				logger.Warn("skipping unknown rule operation", "op", r.Op)
				continue
			}
			return nil, err
		}
		e.chain = append(e.chain, c)
	}

	if cfg.FilterPunctuated {
		puncts := cfg.Punctuations
		if len(puncts) == 0 {
			puncts = refdata.DefaultPunctuations()
		}
		var class strings.Builder
		for _, p := range puncts {
			class.WriteString(regexp.QuoteMeta(p))
		}
		re, err := regexp.Compile("[" + class.String() + "]$")
		if err != nil {
			return nil, fmt.Errorf("invalid punctuation set: %w", err)
		}
		e.punctRe = re
	}

	return e, nil
}

// Len returns the number of compiled rules in the chain.
func (e *Engine) Len() int {
	return len(e.chain)
}

// Clean runs the preprocessing steps and the configured chain in order.
// The chain short-circuits as soon as any step yields empty text.
func (e *Engine) Clean(text string) string {
	if e.cfg.CleanHTML {
		text = htmlToText(text)
		if text == "" {
			return text
		}
	}

	text = applyHandleWhitespace(nil, text)

	if e.punctRe != nil {
		text = e.filterPunctuated(text)
		if text == "" {
			return text
		}
	}

	for i := range e.chain {
		c := &e.chain[i]
		text = c.spec.apply(c, text)
		if text == "" {
			return text
		}
	}

	return text
}

// filterPunctuated keeps only lines whose last character is one of the
// configured punctuation marks.
func (e *Engine) filterPunctuated(text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if e.punctRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// tagRe strips markup when HTML parsing fails.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// htmlToText extracts the text content of an HTML document, preserving
// the line structure of the source text nodes.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(tagRe.ReplaceAllString(html, ""))
	}

	var buf bytes.Buffer
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		buf.WriteString(s.Text())
	})
	return buf.String()
}
