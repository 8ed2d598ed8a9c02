// Package script filters text down to lines written predominantly in a
// target script block. Lines are stripped of characters outside an
// allow-list, rejected when too short or too Latin-heavy, and the
// survivors have ASCII digits converted to native numerals and any
// remaining Latin tokens transliterated.
package script

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/indusnlp/shuddhi/internal/logger"
	"github.com/indusnlp/shuddhi/pkg/refdata"
	"github.com/indusnlp/shuddhi/pkg/translit"
)

// Config controls the gate. The zero Config is not usable; call
// DefaultConfig and adjust.
type Config struct {
	// ScriptLo and ScriptHi bound the target script block, inclusive.
	ScriptLo rune `validate:"gt=0"`
	ScriptHi rune `validate:"gtfield=ScriptLo"`

	// Threshold is the minimum fraction of in-script, digit, or
	// whitespace characters a line needs to survive.
	Threshold float64 `validate:"gt=0,lte=1"`

	// MinTokens rejects lines with fewer whitespace-separated tokens.
	MinTokens int `validate:"gte=1"`

	// Numerals maps ASCII digit values 0-9 to native glyphs.
	Numerals [refdata.NumeralCount]string

	// Transliterator converts Latin-bearing tokens. Nil leaves them
	// untouched.
	Transliterator translit.Transliterator
}

// DefaultConfig targets Devanagari with the thresholds used for Hindi
// news corpora.
func DefaultConfig() *Config {
	return &Config{
		ScriptLo:  0x0900,
		ScriptHi:  0x097F,
		Threshold: 0.7,
		MinTokens: 3,
		Numerals:  refdata.DefaultNumerals(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Gate filters lines by script ratio.
type Gate struct {
	cfg *Config
}

// New validates cfg and returns a Gate. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Gate, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid script gate config: %w", err)
	}
	for i, n := range cfg.Numerals {
		if n == "" {
			return nil, fmt.Errorf("invalid script gate config: numeral %d is empty", i)
		}
	}
	return &Gate{cfg: cfg}, nil
}

// Filter applies the gate to every line of text and joins the
// survivors with newlines. The context bounds transliteration calls.
func (g *Gate) Filter(ctx context.Context, text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		out, ok := g.filterLine(ctx, line)
		if ok {
			kept = append(kept, out)
		}
	}
	return strings.Join(kept, "\n")
}

// FilterLine applies the gate to a single line. The second return is
// false when the line is rejected.
func (g *Gate) FilterLine(ctx context.Context, line string) (string, bool) {
	return g.filterLine(ctx, line)
}

func (g *Gate) filterLine(ctx context.Context, line string) (string, bool) {
	line = g.stripDisallowed(norm.NFC.String(line))

	if len(strings.Fields(line)) < g.cfg.MinTokens {
		return "", false
	}
	if g.scriptRatio(line) < g.cfg.Threshold {
		return "", false
	}

	line = g.convertNumerals(line)
	line = g.transliterate(ctx, line)
	return line, true
}

// stripDisallowed drops every character outside the allow-list:
// printable ASCII, tab, carriage return, newline, and the target
// script block.
func (g *Gate) stripDisallowed(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		case r == '\t' || r == '\r' || r == '\n':
			b.WriteRune(r)
		case r >= g.cfg.ScriptLo && r <= g.cfg.ScriptHi:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scriptRatio is the fraction of characters that are in-script, ASCII
// digits, or whitespace. A line with no characters scores zero.
func (g *Gate) scriptRatio(line string) float64 {
	var total, matched int
	for _, r := range line {
		total++
		switch {
		case r >= g.cfg.ScriptLo && r <= g.cfg.ScriptHi:
			matched++
		case r >= '0' && r <= '9':
			matched++
		case unicode.IsSpace(r):
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// convertNumerals replaces every distinct ASCII digit in the line with
// its native glyph.
func (g *Gate) convertNumerals(line string) string {
	for d := 0; d <= 9; d++ {
		ascii := string(rune('0' + d))
		if strings.Contains(line, ascii) {
			line = strings.ReplaceAll(line, ascii, g.cfg.Numerals[d])
		}
	}
	return line
}

// transliterate rewrites Latin-bearing tokens through the configured
// transliterator. A failed token is kept as-is; one noisy token must
// not cost the whole line.
func (g *Gate) transliterate(ctx context.Context, line string) string {
	if g.cfg.Transliterator == nil || !g.cfg.Transliterator.Available() {
		return line
	}
	tokens := strings.Fields(line)
	changed := false
	for i, tok := range tokens {
		if !hasLatin(tok) {
			continue
		}
		out, err := g.cfg.Transliterator.Transliterate(ctx, tok)
		if err != nil {
			logger.Debug("transliteration failed, keeping token",
				"token", tok, "error", err)
			continue
		}
		if out != "" && out != tok {
			tokens[i] = out
			changed = true
		}
	}
	if !changed {
		return line
	}
	return strings.Join(tokens, " ")
}

func hasLatin(tok string) bool {
	for _, r := range tok {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
