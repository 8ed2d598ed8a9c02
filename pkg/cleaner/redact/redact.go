// Package redact implements overlap-safe, length-preserving phrase masking.
// Disallowed phrases are replaced in place with same-length filler runs
// instead of dropping the containing line, so surrounding corpus text
// survives.
package redact

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMaskRune is the filler character used when none is configured.
const DefaultMaskRune = '*'

// PhraseSet is an immutable, case-normalized, de-duplicated set of phrases.
// Phrases of length <= 1 are excluded at construction. Fixed for the
// lifetime of the pipeline; safe to share across goroutines.
type PhraseSet struct {
	phrases [][]rune
}

// NewPhraseSet builds a PhraseSet from raw phrases. Entries are trimmed and
// lower-cased; duplicates and single-character entries are dropped.
func NewPhraseSet(phrases []string) *PhraseSet {
	seen := make(map[string]struct{}, len(phrases))
	set := &PhraseSet{}
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		p = lowerRunesString(p)
		if len([]rune(p)) <= 1 {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		set.phrases = append(set.phrases, []rune(p))
	}
	// Deterministic order for matching and inspection.
	sort.Slice(set.phrases, func(i, j int) bool {
		return string(set.phrases[i]) < string(set.phrases[j])
	})
	return set
}

// Len returns the number of phrases in the set.
func (s *PhraseSet) Len() int {
	return len(s.phrases)
}

// Phrases returns the normalized phrases in deterministic order.
func (s *PhraseSet) Phrases() []string {
	out := make([]string, len(s.phrases))
	for i, p := range s.phrases {
		out[i] = string(p)
	}
	return out
}

// Masker replaces phrase occurrences with mask-character runs of identical
// length. Built once; read-only thereafter.
type Masker struct {
	set     *PhraseSet
	mask    rune
	enabled bool
}

// NewMasker creates a Masker over the given set. A zero mask rune falls
// back to DefaultMaskRune.
func NewMasker(set *PhraseSet, mask rune) *Masker {
	if mask == 0 {
		mask = DefaultMaskRune
	}
	if set == nil {
		set = NewPhraseSet(nil)
	}
	return &Masker{
		set:     set,
		mask:    mask,
		enabled: true,
	}
}

// NewDisabledMasker creates a Masker that passes every line through.
func NewDisabledMasker() *Masker {
	m := NewMasker(nil, 0)
	m.enabled = false
	return m
}

// Enabled reports whether masking is active.
func (m *Masker) Enabled() bool {
	return m.enabled && m.set.Len() > 0
}

// span is a half-open rune-index range [start, end).
type span struct {
	start, end int
}

// Mask replaces every case-insensitive phrase occurrence in line with a
// run of mask characters of the same rune length. Overlapping candidates
// resolve deterministically: matches are collected in one left-to-right
// scan, earliest start wins (longest match on ties), and scanning resumes
// strictly after a masked span so a masked region can never re-match a
// shorter phrase. Line length is always preserved.
func (m *Masker) Mask(line string) string {
	if line == "" || !m.Enabled() {
		return line
	}

	runes := []rune(line)
	lower := lowerRunes(runes)

	var candidates []span
	for _, phrase := range m.set.phrases {
		for from := 0; ; {
			idx := indexRunes(lower, phrase, from)
			if idx < 0 {
				break
			}
			candidates = append(candidates, span{start: idx, end: idx + len(phrase)})
			from = idx + len(phrase)
		}
	}
	if len(candidates) == 0 {
		return line
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end > candidates[j].end
	})

	lastEnd := 0
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		for i := c.start; i < c.end; i++ {
			runes[i] = m.mask
		}
		lastEnd = c.end
	}

	return string(runes)
}

// lowerRunes lower-cases rune-by-rune, preserving rune count so mask
// offsets stay aligned with the original line.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func lowerRunesString(s string) string {
	return string(lowerRunes([]rune(s)))
}

// indexRunes finds needle in haystack starting at from, returning the rune
// index of the first occurrence or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
