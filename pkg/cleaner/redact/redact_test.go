package redact

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewPhraseSet(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "normalizes case and trims",
			input: []string{"  BadWord ", "other"},
			want:  []string{"badword", "other"},
		},
		{
			name:  "drops duplicates",
			input: []string{"spam", "SPAM", "spam "},
			want:  []string{"spam"},
		},
		{
			name:  "drops single characters",
			input: []string{"a", "x", "ok"},
			want:  []string{"ok"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewPhraseSet(tt.input)
			got := set.Phrases()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("phrase %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		name    string
		phrases []string
		line    string
		want    string
	}{
		{
			name:    "single occurrence",
			phrases: []string{"badword"},
			line:    "this badword here",
			want:    "this ******* here",
		},
		{
			name:    "case insensitive",
			phrases: []string{"badword"},
			line:    "this BadWord here",
			want:    "this ******* here",
		},
		{
			name:    "multiple occurrences",
			phrases: []string{"bad"},
			line:    "bad and bad again",
			want:    "*** and *** again",
		},
		{
			name:    "overlapping phrases earliest start wins",
			phrases: []string{"abcd", "cdef"},
			line:    "xxabcdefxx",
			want:    "xx****efxx",
		},
		{
			name:    "same start longest wins",
			phrases: []string{"ab", "abcd"},
			line:    "abcdef",
			want:    "****ef",
		},
		{
			name:    "masked region does not rematch shorter phrase",
			phrases: []string{"abab", "ba"},
			line:    "ababa",
			want:    "****a",
		},
		{
			name:    "devanagari phrase",
			phrases: []string{"बुरा शब्द"},
			line:    "यह बुरा शब्द है",
			want:    "यह ********* है",
		},
		{
			name:    "no match",
			phrases: []string{"badword"},
			line:    "perfectly clean line",
			want:    "perfectly clean line",
		},
		{
			name:    "empty line",
			phrases: []string{"badword"},
			line:    "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMasker(NewPhraseSet(tt.phrases), '*')
			got := m.Mask(tt.line)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(tt.line) {
				t.Errorf("mask changed line length: %q -> %q", tt.line, got)
			}
		})
	}
}

func TestMask_NoUnmaskedOccurrenceRemains(t *testing.T) {
	phrases := []string{"spam", "junk mail", "घटिया"}
	m := NewMasker(NewPhraseSet(phrases), '*')

	lines := []string{
		"spam spam junk mail spam",
		"some घटिया content with SPAM inside",
		"Junk Mail at the start and spam at the end",
	}
	for _, line := range lines {
		masked := strings.ToLower(m.Mask(line))
		for _, p := range phrases {
			if strings.Contains(masked, p) {
				t.Errorf("phrase %q still present in %q", p, masked)
			}
		}
	}
}

func TestMask_Disabled(t *testing.T) {
	m := NewDisabledMasker()
	line := "anything at all"
	if got := m.Mask(line); got != line {
		t.Errorf("disabled masker must pass through, got %q", got)
	}

	empty := NewMasker(NewPhraseSet(nil), '*')
	if got := empty.Mask(line); got != line {
		t.Errorf("empty set must pass through, got %q", got)
	}
}
