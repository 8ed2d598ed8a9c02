package shuddhi

import (
	"strings"
	"testing"

	"github.com/indusnlp/shuddhi/pkg/cleaner/rules"
)

func mustPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func mustClean(t *testing.T, p *Pipeline, in string) string {
	t.Helper()
	out, err := p.Clean(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		mustPipeline(t)
	})

	t.Run("bad rule is fatal", func(t *testing.T) {
		_, err := New(WithRules([]rules.Rule{
			{Op: rules.OpRemovePatterns, Patterns: []string{"("}},
		}))
		if err == nil {
			t.Fatal("expected error for malformed rule pattern")
		}
	})

	t.Run("bad threshold is fatal", func(t *testing.T) {
		if _, err := New(WithScriptThreshold(2.0)); err == nil {
			t.Fatal("expected error for threshold > 1")
		}
	})

	t.Run("missing phrase file is fatal", func(t *testing.T) {
		if _, err := New(WithPhraseFile("/nonexistent/phrases.txt")); err == nil {
			t.Fatal("expected error for missing phrase file")
		}
	})
}

func TestClean_Empty(t *testing.T) {
	p := mustPipeline(t)
	if got := mustClean(t, p, ""); got != "" {
		t.Errorf("empty input must return empty, got %q", got)
	}
}

func TestClean_EndToEnd(t *testing.T) {
	p := mustPipeline(t, WithPhrases([]string{"निषिद्ध शब्द"}))

	in := strings.Join([]string{
		"यह पहली साफ हिंदी पंक्ति है।",
		"दो शब्द",
		"all english noise line",
		"यहाँ निषिद्ध शब्द लिखा गया है और बाकी सामग्री पूरी तरह शुद्ध हिंदी में है।",
		"समीकरण $x^2$ का मान यहाँ ज्ञात कीजिए।",
		"| क | ख |",
		"|---|---|",
	}, "\n")

	got := mustClean(t, p, in)

	if !strings.Contains(got, "यह पहली साफ हिंदी पंक्ति है।") {
		t.Errorf("clean hindi line must survive:\n%s", got)
	}
	if strings.Contains(got, "दो शब्द") {
		t.Errorf("line under token minimum must be dropped:\n%s", got)
	}
	if strings.Contains(got, "english noise") {
		t.Errorf("latin-heavy line must be dropped:\n%s", got)
	}
	if strings.Contains(got, "निषिद्ध शब्द") {
		t.Errorf("configured phrase must be masked:\n%s", got)
	}
	if !strings.Contains(got, "लिखा गया है।") {
		t.Errorf("line with masked phrase must be retained:\n%s", got)
	}
	if !strings.Contains(got, "$x^2$") {
		t.Errorf("protected formula must be intact:\n%s", got)
	}
	if !strings.Contains(got, "| क | ख |") || !strings.Contains(got, "|---|---|") {
		t.Errorf("table rows must pass through verbatim:\n%s", got)
	}
}

func TestClean_Idempotence(t *testing.T) {
	p := mustPipeline(t, WithPhrases([]string{"निषिद्ध शब्द"}))

	in := strings.Join([]string{
		"यह पहली साफ हिंदी पंक्ति है।",
		"सन 1947 में देश आज़ाद हुआ।",
		"यहाँ निषिद्ध शब्द लिखा गया है और बाकी सामग्री पूरी तरह शुद्ध हिंदी में है।",
		"समीकरण $x^2$ का मान यहाँ ज्ञात कीजिए।",
		"| क | ख |",
	}, "\n")

	once := mustClean(t, p, in)
	twice := mustClean(t, p, once)
	if once != twice {
		t.Errorf("second pass changed output:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func TestClean_SpanRoundTrip(t *testing.T) {
	p := mustPipeline(t, WithoutScriptGate())

	spans := []string{
		"भाव $a+b$ यहाँ देखें।",
		"सूत्र $$E = mc^2$$ प्रसिद्ध है।",
		"कोड `fmt.Println(x)` चलाइए।",
	}
	for _, in := range spans {
		got := mustClean(t, p, in)
		start := strings.IndexAny(in, "$`")
		end := strings.LastIndexAny(in, "$`")
		span := in[start : end+1]
		if !strings.Contains(got, span) {
			t.Errorf("span %q must survive byte-for-byte, got %q", span, got)
		}
	}
}

func TestClean_BlankLineCollapse(t *testing.T) {
	p := mustPipeline(t)

	in := "यह पहली साफ हिंदी पंक्ति है।\n\n\n\n\n| क | ख |\nदूसरी साफ हिंदी पंक्ति यहाँ है।"
	got := mustClean(t, p, in)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("runs of 3+ newlines must collapse, got %q", got)
	}
}

func TestClean_Trim(t *testing.T) {
	p := mustPipeline(t)

	in := "\n\n  यह पहली साफ हिंदी पंक्ति है।  \n\n"
	got := mustClean(t, p, in)
	if got != "यह पहली साफ हिंदी पंक्ति है।" {
		t.Errorf("output must be trimmed, got %q", got)
	}
}

func TestClean_UserRules(t *testing.T) {
	p := mustPipeline(t, WithRules([]rules.Rule{
		{Op: rules.OpRemoveLineWithKeyword, Keywords: []string{"Disclaimer"}},
	}))

	in := "यह पहली साफ हिंदी पंक्ति है।\nDisclaimer: सामग्री जाँची नहीं गई है।"
	got := mustClean(t, p, in)
	if strings.Contains(got, "Disclaimer") {
		t.Errorf("keyword rule must apply before line processing, got %q", got)
	}
}

func TestClean_NumeralConversion(t *testing.T) {
	p := mustPipeline(t)

	got := mustClean(t, p, "सन 1947 में देश आज़ाद हुआ।")
	if !strings.Contains(got, "१९४७") {
		t.Errorf("ascii digits must convert to devanagari, got %q", got)
	}
}

func TestClean_AnnotationRemoval(t *testing.T) {
	p := mustPipeline(t)

	got := mustClean(t, p, "यह शब्द (transliteration) हटाया जाना चाहिए।")
	if strings.Contains(got, "(transliteration)") {
		t.Errorf("parenthesized latin annotation must be removed, got %q", got)
	}
}

func TestClean_DisabledStages(t *testing.T) {
	t.Run("without script gate", func(t *testing.T) {
		p := mustPipeline(t, WithoutScriptGate())
		got := mustClean(t, p, "all english text stays here")
		if got != "all english text stays here" {
			t.Errorf("gate disabled, line must survive, got %q", got)
		}
	})

	t.Run("without redaction", func(t *testing.T) {
		p := mustPipeline(t,
			WithoutRedaction(),
			WithPhrases([]string{"निषिद्ध"}),
		)
		got := mustClean(t, p, "यहाँ निषिद्ध शब्द लिखा गया है।")
		if !strings.Contains(got, "निषिद्ध") {
			t.Errorf("redaction disabled, phrase must remain, got %q", got)
		}
	})
}

func TestClean_MathLineLightCleanOnly(t *testing.T) {
	p := mustPipeline(t, WithPhrases([]string{"secret"}))

	// A protected line skips redaction and the gate entirely.
	in := "secret $x+y$ short"
	got := mustClean(t, p, in)
	if !strings.Contains(got, "secret") {
		t.Errorf("protected line must skip redaction, got %q", got)
	}
	if !strings.Contains(got, "$x+y$") {
		t.Errorf("formula must survive, got %q", got)
	}
}

func TestClean_MultiLineDollarNotProtected(t *testing.T) {
	p := mustPipeline(t, WithoutScriptGate())

	in := "पहला भाग $a +\nb$ दूसरा भाग"
	got := mustClean(t, p, in)
	if strings.Contains(got, "$") {
		t.Errorf("unpaired delimiters across lines must be stripped, got %q", got)
	}
}
