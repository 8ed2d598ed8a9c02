// Package rules implements a configurable line-transform engine: an
// ordered chain of named operations applied to a text blob. Chains are
// declared as data (Go literals or YAML/JSON files), validated against an
// operation registry at construction time, and applied in caller order.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/indusnlp/shuddhi/pkg/refdata"
)

// Operation names accepted in a Rule. The catalog mirrors the cleaning
// config surface used by the corpus scraping jobs.
const (
	OpRemoveLineWithKeyword    = "remove_line_with_keyword"
	OpRemoveLineWithPattern    = "remove_line_with_pattern"
	OpRemoveLineAndBefore      = "remove_line_and_before"
	OpRemoveLineAndAfter       = "remove_line_and_after"
	OpRemoveLineAndAbove       = "remove_line_and_above"
	OpRemoveLineAndBelow       = "remove_line_and_below"
	OpRemoveAfterKeyword       = "remove_after_keyword"
	OpRemoveSingleWordLines    = "remove_single_word_lines"
	OpRemoveBlankLines         = "remove_blank_lines"
	OpRemoveLinesStartingWith  = "remove_lines_starting_with"
	OpHandleWhitespace         = "handle_whitespace"
	OpRemoveRedundantLines     = "remove_redundant_lines"
	OpRemoveRepeatedSeqs       = "remove_lines_with_repeated_seqs"
	OpRemovePatterns           = "remove_patterns"
	OpAddNewlineOnPattern      = "add_newline_on_pattern"
	OpInsertOnPattern          = "insert_on_pattern"
	OpSelectOnPattern          = "select_on_pattern"
)

// ErrUnknownOp is returned (or logged, depending on policy) when a rule
// names an operation the registry does not know.
var ErrUnknownOp = errors.New("unknown rule operation")

// UnknownOpPolicy controls what happens when a chain names an unknown
// operation.
type UnknownOpPolicy int

const (
	// UnknownOpSkip logs a warning and drops the rule from the chain.
	UnknownOpSkip UnknownOpPolicy = iota
	// UnknownOpError fails construction.
	UnknownOpError
)

// Rule is one (operation, argument) entry in a chain. Exactly one argument
// form applies per operation: a keyword list, a pattern list, a
// pattern/replacement pair, or a scalar. File, when set, names a
// newline-delimited .txt list resolved at construction time in place of
// the inline keyword or pattern list.
type Rule struct {
	Op        string   `yaml:"op" json:"op"`
	Keywords  []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Patterns  []string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Replace   string   `yaml:"replace,omitempty" json:"replace,omitempty"`
	MinRepeat int      `yaml:"min_repeat,omitempty" json:"min_repeat,omitempty"`
	File      string   `yaml:"file,omitempty" json:"file,omitempty"`
}

// argKind describes the argument form an operation takes.
type argKind int

const (
	argNone argKind = iota
	argKeywords
	argPatterns
	argPair
	argScalar
)

// opSpec ties an operation name to its argument form, pattern compile
// flags, and implementation.
type opSpec struct {
	kind    argKind
	reFlags string // regexp flags prepended when compiling patterns
	apply   func(c *compiledRule, text string) string
}

// registry is the validated operation catalog. Checked at construction,
// never at call time.
var registry = map[string]opSpec{
	OpRemoveLineWithKeyword:   {kind: argKeywords, apply: applyRemoveLineWithKeyword},
	OpRemoveLineWithPattern:   {kind: argPatterns, reFlags: "(?m)", apply: applyRemoveLineWithPattern},
	OpRemoveLineAndBefore:     {kind: argKeywords, apply: applyRemoveLineAndBefore},
	OpRemoveLineAndAfter:      {kind: argKeywords, apply: applyRemoveLineAndAfter},
	OpRemoveLineAndAbove:      {kind: argKeywords, apply: applyRemoveLineAndAbove},
	OpRemoveLineAndBelow:      {kind: argKeywords, apply: applyRemoveLineAndBelow},
	OpRemoveAfterKeyword:      {kind: argKeywords, apply: applyRemoveAfterKeyword},
	OpRemoveSingleWordLines:   {kind: argNone, apply: applyRemoveSingleWordLines},
	OpRemoveBlankLines:        {kind: argNone, apply: applyRemoveBlankLines},
	OpRemoveLinesStartingWith: {kind: argKeywords, apply: applyRemoveLinesStartingWith},
	OpHandleWhitespace:        {kind: argNone, apply: applyHandleWhitespace},
	OpRemoveRedundantLines:    {kind: argNone, apply: applyRemoveRedundantLines},
	OpRemoveRepeatedSeqs:      {kind: argScalar, apply: applyRemoveRepeatedSeqs},
	OpRemovePatterns:          {kind: argPatterns, reFlags: "(?s)", apply: applyRemovePatterns},
	OpAddNewlineOnPattern:     {kind: argPatterns, reFlags: "(?s)", apply: applyAddNewlineOnPattern},
	OpInsertOnPattern:         {kind: argPair, reFlags: "(?s)", apply: applyInsertOnPattern},
	OpSelectOnPattern:         {kind: argPatterns, reFlags: "(?m)", apply: applySelectOnPattern},
}

// compiledRule is a rule after validation: lists resolved, regexes
// compiled. Immutable once built.
type compiledRule struct {
	op        string
	spec      opSpec
	keywords  []string
	regexps   []*regexp.Regexp
	re        *regexp.Regexp
	replace   string
	minRepeat int
}

// compile validates one rule against the registry and resolves its
// arguments. All failures here are fatal configuration errors.
func compile(r Rule) (compiledRule, error) {
	spec, ok := registry[r.Op]
	if !ok {
		return compiledRule{}, fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}

	c := compiledRule{op: r.Op, spec: spec}

	entries := r.Keywords
	patterns := r.Patterns
	if r.File != "" {
		if !strings.EqualFold(filepath.Ext(r.File), ".txt") {
			return compiledRule{}, fmt.Errorf("rule %q: list file %q must be a .txt file", r.Op, r.File)
		}
		list, err := refdata.ReadLines(r.File)
		if err != nil {
			return compiledRule{}, fmt.Errorf("rule %q: %w", r.Op, err)
		}
		switch spec.kind {
		case argKeywords:
			entries = list
		case argPatterns:
			patterns = list
		default:
			return compiledRule{}, fmt.Errorf("rule %q does not take a list file", r.Op)
		}
	}

	switch spec.kind {
	case argKeywords:
		if len(entries) == 0 {
			return compiledRule{}, fmt.Errorf("rule %q requires keywords", r.Op)
		}
		c.keywords = entries

	case argPatterns:
		if len(patterns) == 0 {
			return compiledRule{}, fmt.Errorf("rule %q requires patterns", r.Op)
		}
		for _, p := range patterns {
			re, err := regexp.Compile(spec.reFlags + p)
			if err != nil {
				return compiledRule{}, fmt.Errorf("rule %q: invalid pattern %q: %w", r.Op, p, err)
			}
			c.regexps = append(c.regexps, re)
		}

	case argPair:
		if r.Pattern == "" {
			return compiledRule{}, fmt.Errorf("rule %q requires a pattern", r.Op)
		}
		re, err := regexp.Compile(spec.reFlags + r.Pattern)
		if err != nil {
			return compiledRule{}, fmt.Errorf("rule %q: invalid pattern %q: %w", r.Op, r.Pattern, err)
		}
		c.re = re
		c.replace = r.Replace

	case argScalar:
		if r.MinRepeat < 2 {
			return compiledRule{}, fmt.Errorf("rule %q requires min_repeat >= 2, got %d", r.Op, r.MinRepeat)
		}
		c.minRepeat = r.MinRepeat
	}

	return c, nil
}

// BasicChain returns the light chain the orchestrator applies to every
// surviving line: trim, de-duplicate, drop blanks.
func BasicChain() []Rule {
	return []Rule{
		{Op: OpHandleWhitespace},
		{Op: OpRemoveRedundantLines},
		{Op: OpRemoveBlankLines},
	}
}

// ruleFile is the on-disk schema for a rule chain.
type ruleFile struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// FromFile loads an ordered rule chain from a YAML or JSON file. The file
// holds either a top-level list of rules or a {rules: [...]} document.
func FromFile(path string) ([]Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	// YAML is a superset of JSON, so one decoder covers both extensions.
	var doc ruleFile
	if err := yaml.Unmarshal(b, &doc); err == nil && len(doc.Rules) > 0 {
		return doc.Rules, nil
	}

	var list []Rule
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	return list, nil
}
