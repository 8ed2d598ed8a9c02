package script

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubTranslit struct {
	out       map[string]string
	err       error
	available bool
	calls     int
}

func (s *stubTranslit) Transliterate(_ context.Context, token string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if out, ok := s.out[token]; ok {
		return out, nil
	}
	return token, nil
}

func (s *stubTranslit) Name() string    { return "stub" }
func (s *stubTranslit) Available() bool { return s.available }

func mustGate(t *testing.T, cfg *Config) *Gate {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		g := mustGate(t, nil)
		if g.cfg.Threshold != 0.7 {
			t.Errorf("expected default threshold 0.7, got %v", g.cfg.Threshold)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Threshold = 1.5
		if _, err := New(cfg); err == nil {
			t.Error("expected error for threshold > 1")
		}
	})

	t.Run("inverted script block", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ScriptLo, cfg.ScriptHi = cfg.ScriptHi, cfg.ScriptLo
		if _, err := New(cfg); err == nil {
			t.Error("expected error for hi < lo")
		}
	})

	t.Run("empty numeral entry", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Numerals[3] = ""
		if _, err := New(cfg); err == nil {
			t.Error("expected error for empty numeral")
		}
	})
}

func TestFilter(t *testing.T) {
	g := mustGate(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "devanagari line survives",
			in:   "यह एक साफ पंक्ति है।",
			want: "यह एक साफ पंक्ति है।",
		},
		{
			name: "short line rejected",
			in:   "दो शब्द",
			want: "",
		},
		{
			name: "latin heavy line rejected",
			in:   "click here to subscribe now",
			want: "",
		},
		{
			name: "emoji stripped from kept line",
			in:   "यह एक साफ 😀 पंक्ति है।",
			want: "यह एक साफ  पंक्ति है।",
		},
		{
			name: "mixed doc keeps hindi drops english",
			in:   "पहली हिंदी पंक्ति यहाँ है।\nall english junk line here\nदूसरी हिंदी पंक्ति यहाँ है।",
			want: "पहली हिंदी पंक्ति यहाँ है।\nदूसरी हिंदी पंक्ति यहाँ है।",
		},
		{
			name: "empty input rejected",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Filter(ctx, tc.in); got != tc.want {
				t.Errorf("Filter(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFilterLine_ThresholdBoundary(t *testing.T) {
	g := mustGate(t, nil)
	ctx := context.Background()

	t.Run("either side of threshold", func(t *testing.T) {
		accept := "कखग घङच छजझ ab" // 12 in-class of 13 ≈ 0.92
		if _, ok := g.FilterLine(ctx, accept); !ok {
			t.Errorf("line above threshold rejected: %q", accept)
		}
		reject := "कख गघ abcdefgh" // 6 in-class of 14 ≈ 0.43
		if _, ok := g.FilterLine(ctx, reject); ok {
			t.Errorf("line below threshold accepted: %q", reject)
		}
	})

	t.Run("exact boundary", func(t *testing.T) {
		// 11 devanagari + 3 spaces = 14 in-class of 20, exactly 0.7.
		atThreshold := "कखगघ ङचछज झञट abcdef"
		if _, ok := g.FilterLine(ctx, atThreshold); !ok {
			t.Errorf("line at exactly the threshold must be accepted: %q", atThreshold)
		}

		// 67 devanagari + 2 spaces = 69 in-class of 100, exactly 0.69.
		justBelow := strings.Repeat("क", 33) + " " + strings.Repeat("ख", 33) + " " +
			strings.Repeat("a", 31) + "ग"
		if _, ok := g.FilterLine(ctx, justBelow); ok {
			t.Errorf("line one character below the threshold must be rejected: %q", justBelow)
		}
	})

	t.Run("digits and whitespace count in-class", func(t *testing.T) {
		line := "क 12345 67890 ख"
		out, ok := g.FilterLine(ctx, line)
		if !ok {
			t.Fatalf("digit-heavy line rejected: %q", line)
		}
		if strings.ContainsAny(out, "0123456789") {
			t.Errorf("ascii digits must be converted, got %q", out)
		}
	})
}

func TestFilterLine_Numerals(t *testing.T) {
	g := mustGate(t, nil)

	out, ok := g.FilterLine(context.Background(), "सन 1947 में आज़ादी मिली।")
	if !ok {
		t.Fatal("line unexpectedly rejected")
	}
	want := "सन १९४७ में आज़ादी मिली।"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestFilterLine_Transliteration(t *testing.T) {
	ctx := context.Background()

	t.Run("latin tokens rewritten", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Transliterator = &stubTranslit{
			available: true,
			out:       map[string]string{"congress": "कांग्रेस"},
		}
		g := mustGate(t, cfg)

		out, ok := g.FilterLine(ctx, "नेता ने congress की बैठक बुलाई।")
		if !ok {
			t.Fatal("line unexpectedly rejected")
		}
		if !strings.Contains(out, "कांग्रेस") || strings.Contains(out, "congress") {
			t.Errorf("expected transliterated token, got %q", out)
		}
	})

	t.Run("failure keeps token", func(t *testing.T) {
		cfg := DefaultConfig()
		stub := &stubTranslit{available: true, err: errors.New("upstream down")}
		cfg.Transliterator = stub
		g := mustGate(t, cfg)

		out, ok := g.FilterLine(ctx, "नेता ने congress की बैठक बुलाई।")
		if !ok {
			t.Fatal("failed transliteration must not reject the line")
		}
		if !strings.Contains(out, "congress") {
			t.Errorf("failed token should be kept as-is, got %q", out)
		}
	})

	t.Run("unavailable transliterator skipped", func(t *testing.T) {
		cfg := DefaultConfig()
		stub := &stubTranslit{available: false}
		cfg.Transliterator = stub
		g := mustGate(t, cfg)

		g.FilterLine(ctx, "नेता ने congress की बैठक बुलाई।")
		if stub.calls != 0 {
			t.Errorf("unavailable transliterator must not be called, got %d calls", stub.calls)
		}
	})

	t.Run("pure devanagari tokens untouched", func(t *testing.T) {
		cfg := DefaultConfig()
		stub := &stubTranslit{available: true}
		cfg.Transliterator = stub
		g := mustGate(t, cfg)

		g.FilterLine(ctx, "यह एक साफ पंक्ति है।")
		if stub.calls != 0 {
			t.Errorf("devanagari-only line triggered %d transliteration calls", stub.calls)
		}
	})
}
