package shuddhi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/indusnlp/shuddhi/pkg/cleaner"
	"github.com/indusnlp/shuddhi/pkg/cleaner/protect"
	"github.com/indusnlp/shuddhi/pkg/cleaner/redact"
	"github.com/indusnlp/shuddhi/pkg/cleaner/rules"
	"github.com/indusnlp/shuddhi/pkg/cleaner/script"
	"github.com/indusnlp/shuddhi/pkg/refdata"
)

// annotationRe matches bare parenthesized Latin annotations such as
// "(Hindi)" left behind by OCR and scraped markup.
var annotationRe = regexp.MustCompile(`\([a-zA-Z]+\)`)

// blankRunRe collapses runs of three or more newlines to one blank line.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Pipeline is the full cleaning pipeline: span protection, document
// rules, per-line classification and transforms, and span restoration.
// It is immutable after construction and safe for concurrent use.
type Pipeline struct {
	cfg    Config
	user   *rules.Engine
	basic  *rules.Engine
	masker *redact.Masker
	gate   *script.Gate
}

var _ cleaner.Cleaner = (*Pipeline)(nil)

// New builds a Pipeline from options applied over DefaultConfig.
func New(opts ...Option) (*Pipeline, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pipeline{cfg: cfg}

	var err error
	if len(cfg.Rules) > 0 {
		p.user, err = rules.New(cfg.Rules, &rules.Config{UnknownOp: cfg.UnknownOp})
		if err != nil {
			return nil, fmt.Errorf("building rule chain: %w", err)
		}
	}
	p.basic, err = rules.New(rules.BasicChain(), &rules.Config{UnknownOp: cfg.UnknownOp})
	if err != nil {
		return nil, fmt.Errorf("building basic chain: %w", err)
	}

	if cfg.Redact {
		phrases := cfg.Phrases
		if cfg.PhraseFile != "" {
			fromFile, err := refdata.ReadLines(cfg.PhraseFile)
			if err != nil {
				return nil, fmt.Errorf("loading phrase file: %w", err)
			}
			phrases = append(append([]string{}, phrases...), fromFile...)
		}
		p.masker = redact.NewMasker(redact.NewPhraseSet(phrases), cfg.MaskRune)
	} else {
		p.masker = redact.NewDisabledMasker()
	}

	if cfg.ScriptGate {
		p.gate, err = script.New(&script.Config{
			ScriptLo:       cfg.ScriptLo,
			ScriptHi:       cfg.ScriptHi,
			Threshold:      cfg.Threshold,
			MinTokens:      cfg.MinTokens,
			Numerals:       cfg.Numerals,
			Transliterator: cfg.Transliterator,
		})
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Name implements cleaner.Cleaner.
func (p *Pipeline) Name() string {
	return "shuddhi"
}

// Clean implements cleaner.Cleaner using a background context.
func (p *Pipeline) Clean(text string) (string, error) {
	return p.CleanContext(context.Background(), text)
}

// CleanContext runs the pipeline over one document. The context bounds
// transliteration calls made by the script gate.
func (p *Pipeline) CleanContext(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	prot := protect.NewProtector()
	text = prot.Protect(text)

	if p.user != nil {
		text = p.user.Clean(text)
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		switch protect.Classify(line, prot) {
		case protect.Table:
			kept = append(kept, line)
		case protect.MathProtected:
			// Kept even when the light clean empties the visible text;
			// the placeholder must survive for restoration.
			kept = append(kept, p.basic.Clean(lightClean(line)))
		default:
			out, ok := p.cleanNormal(ctx, line)
			if ok {
				kept = append(kept, out)
			}
		}
	}

	text = prot.Restore(strings.Join(kept, "\n"))
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

// cleanNormal transforms one unprotected, non-table line. The second
// return is false when the line does not survive.
func (p *Pipeline) cleanNormal(ctx context.Context, line string) (string, bool) {
	line = p.masker.Mask(line)
	line = p.basic.Clean(lightClean(line))
	if line == "" {
		return "", false
	}
	if p.gate != nil {
		var ok bool
		line, ok = p.gate.FilterLine(ctx, line)
		if !ok {
			return "", false
		}
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

// lightClean removes math delimiters and bare Latin annotations.
func lightClean(line string) string {
	line = strings.ReplaceAll(line, "$", "")
	return annotationRe.ReplaceAllString(line, "")
}
