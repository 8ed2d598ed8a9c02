// Package shuddhi provides the public cleaning pipeline for
// Hindi/English mixed-script text.
package shuddhi

import (
	"github.com/indusnlp/shuddhi/pkg/cleaner/redact"
	"github.com/indusnlp/shuddhi/pkg/cleaner/rules"
	"github.com/indusnlp/shuddhi/pkg/refdata"
	"github.com/indusnlp/shuddhi/pkg/translit"
)

// Config holds all pipeline configuration.
type Config struct {
	// Rule settings
	Rules     []rules.Rule
	UnknownOp rules.UnknownOpPolicy

	// Redaction settings
	Phrases    []string
	PhraseFile string
	MaskRune   rune
	Redact     bool

	// Script gate settings
	ScriptGate     bool
	ScriptLo       rune
	ScriptHi       rune
	Threshold      float64
	MinTokens      int
	Numerals       [refdata.NumeralCount]string
	Transliterator translit.Transliterator
}

// DefaultConfig returns sensible defaults for Hindi text.
func DefaultConfig() Config {
	return Config{
		UnknownOp:  rules.UnknownOpSkip,
		MaskRune:   redact.DefaultMaskRune,
		Redact:     true,
		ScriptGate: true,
		ScriptLo:   0x0900,
		ScriptHi:   0x097F,
		Threshold:  0.7,
		MinTokens:  3,
		Numerals:   refdata.DefaultNumerals(),
	}
}

// Option configures the pipeline.
type Option func(*Config)

// WithRules sets the document-level rule chain applied before
// line-by-line processing.
func WithRules(chain []rules.Rule) Option {
	return func(c *Config) {
		c.Rules = chain
	}
}

// WithPhrases sets the phrases to redact.
func WithPhrases(phrases []string) Option {
	return func(c *Config) {
		c.Phrases = phrases
	}
}

// WithPhraseFile loads redaction phrases from a newline-delimited file.
func WithPhraseFile(path string) Option {
	return func(c *Config) {
		c.PhraseFile = path
	}
}

// WithMaskRune sets the rune used for masked characters.
func WithMaskRune(r rune) Option {
	return func(c *Config) {
		c.MaskRune = r
	}
}

// WithTransliterator sets the transliterator for Latin-bearing tokens.
func WithTransliterator(t translit.Transliterator) Option {
	return func(c *Config) {
		c.Transliterator = t
	}
}

// WithScriptThreshold sets the minimum in-script character ratio.
func WithScriptThreshold(t float64) Option {
	return func(c *Config) {
		c.Threshold = t
	}
}

// WithScriptRange sets the target script block, inclusive.
func WithScriptRange(lo, hi rune) Option {
	return func(c *Config) {
		c.ScriptLo = lo
		c.ScriptHi = hi
	}
}

// WithMinTokens sets the minimum token count for a line to survive
// the script gate.
func WithMinTokens(n int) Option {
	return func(c *Config) {
		c.MinTokens = n
	}
}

// WithNumerals sets the native numeral table, indexed by digit value.
func WithNumerals(table [refdata.NumeralCount]string) Option {
	return func(c *Config) {
		c.Numerals = table
	}
}

// WithUnknownOpPolicy sets how unrecognized rule operations are
// handled.
func WithUnknownOpPolicy(p rules.UnknownOpPolicy) Option {
	return func(c *Config) {
		c.UnknownOp = p
	}
}

// WithoutScriptGate disables script-ratio filtering; all line kinds
// then keep their lines regardless of script.
func WithoutScriptGate() Option {
	return func(c *Config) {
		c.ScriptGate = false
	}
}

// WithoutRedaction disables phrase masking.
func WithoutRedaction() Option {
	return func(c *Config) {
		c.Redact = false
	}
}
