package rules

import (
	"strings"
)

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// applyRemoveLineWithKeyword drops lines containing any of the keywords.
func applyRemoveLineWithKeyword(c *compiledRule, text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if !containsAny(line, c.keywords) {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// applyRemoveLineWithPattern deletes every match of the line-anchored
// patterns, leaving the surrounding newlines in place.
func applyRemoveLineWithPattern(c *compiledRule, text string) string {
	for _, re := range c.regexps {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// applyRemoveLineAndBefore removes a keyword line plus the line above it.
func applyRemoveLineAndBefore(c *compiledRule, text string) string {
	lines := splitLines(text)
	toRemove := make(map[int]struct{})
	for _, keyword := range c.keywords {
		for i, line := range lines {
			if strings.Contains(line, keyword) {
				toRemove[i] = struct{}{}
				if i > 0 {
					toRemove[i-1] = struct{}{}
				}
			}
		}
	}
	return joinLines(dropIndices(lines, toRemove))
}

// applyRemoveLineAndAfter removes a keyword line plus the line below it.
func applyRemoveLineAndAfter(c *compiledRule, text string) string {
	lines := splitLines(text)
	toRemove := make(map[int]struct{})
	for _, keyword := range c.keywords {
		for i, line := range lines {
			if strings.Contains(line, keyword) {
				toRemove[i] = struct{}{}
				if i < len(lines)-1 {
					toRemove[i+1] = struct{}{}
				}
			}
		}
	}
	return joinLines(dropIndices(lines, toRemove))
}

// applyRemoveLineAndAbove removes a keyword line and everything above it.
// Keywords are evaluated one at a time against the current state, so the
// effect is cumulative.
func applyRemoveLineAndAbove(c *compiledRule, text string) string {
	lines := splitLines(text)
	for _, keyword := range c.keywords {
		toRemove := make(map[int]struct{})
		for i, line := range lines {
			if strings.Contains(line, keyword) {
				for j := 0; j <= i; j++ {
					toRemove[j] = struct{}{}
				}
			}
		}
		lines = dropIndices(lines, toRemove)
	}
	return joinLines(lines)
}

// applyRemoveLineAndBelow removes a keyword line and everything below it.
// Cumulative across keywords, like applyRemoveLineAndAbove.
func applyRemoveLineAndBelow(c *compiledRule, text string) string {
	lines := splitLines(text)
	for _, keyword := range c.keywords {
		toRemove := make(map[int]struct{})
		for i, line := range lines {
			if strings.Contains(line, keyword) {
				for j := i; j < len(lines); j++ {
					toRemove[j] = struct{}{}
				}
			}
		}
		lines = dropIndices(lines, toRemove)
	}
	return joinLines(lines)
}

// applyRemoveAfterKeyword truncates each line at the first occurrence of
// any keyword.
func applyRemoveAfterKeyword(c *compiledRule, text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		for _, keyword := range c.keywords {
			if idx := strings.Index(line, keyword); idx >= 0 {
				line = strings.TrimSpace(line[:idx])
			}
		}
		lines[i] = line
	}
	return joinLines(lines)
}

// applyRemoveSingleWordLines drops lines that consist of a single word.
func applyRemoveSingleWordLines(c *compiledRule, text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if len(strings.Fields(line)) != 1 {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// applyRemoveBlankLines drops blank and whitespace-only lines.
func applyRemoveBlankLines(c *compiledRule, text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// applyRemoveLinesStartingWith drops lines starting with any keyword.
func applyRemoveLinesStartingWith(c *compiledRule, text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		drop := false
		for _, keyword := range c.keywords {
			if strings.HasPrefix(line, keyword) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// applyHandleWhitespace trims leading and trailing whitespace per line.
func applyHandleWhitespace(c *compiledRule, text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return joinLines(lines)
}

// applyRemoveRedundantLines de-duplicates lines, keeping the first
// occurrence and preserving order.
func applyRemoveRedundantLines(c *compiledRule, text string) string {
	seen := make(map[string]struct{})
	var unique []string
	for _, line := range splitLines(text) {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		unique = append(unique, line)
	}
	return joinLines(unique)
}

// applyRemoveRepeatedSeqs drops lines containing a substring repeated at
// least minRepeat times consecutively.
func applyRemoveRepeatedSeqs(c *compiledRule, text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if !hasRepeatedSubstring(line, c.minRepeat) {
			kept = append(kept, line)
		}
	}
	return joinLines(kept)
}

// hasRepeatedSubstring scans increasing substring lengths and all start
// offsets, skipping already-tested substrings, and reports whether any
// substring occurs at least minRepeat times consecutively.
func hasRepeatedSubstring(line string, minRepeat int) bool {
	runes := []rune(line)
	length := len(runes)
	checked := make(map[string]struct{})
	for size := 1; size <= length/minRepeat; size++ {
		for start := 0; start < size && start+size <= length; start++ {
			sub := string(runes[start : start+size])
			if _, done := checked[sub]; done {
				continue
			}
			checked[sub] = struct{}{}
			if strings.Contains(line, strings.Repeat(sub, minRepeat)) {
				return true
			}
		}
	}
	return false
}

// applyRemovePatterns deletes every occurrence of the patterns.
func applyRemovePatterns(c *compiledRule, text string) string {
	for _, re := range c.regexps {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// applyAddNewlineOnPattern inserts a newline after each match's first
// capture group.
func applyAddNewlineOnPattern(c *compiledRule, text string) string {
	for _, re := range c.regexps {
		text = re.ReplaceAllString(text, "${1}\n")
	}
	return text
}

// applyInsertOnPattern rewrites matches with the configured replacement.
func applyInsertOnPattern(c *compiledRule, text string) string {
	return c.re.ReplaceAllString(text, c.replace)
}

// applySelectOnPattern narrows the text to the first capture group of
// each pattern's first match, chaining across patterns.
func applySelectOnPattern(c *compiledRule, text string) string {
	for _, re := range c.regexps {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			text = m[1]
		}
	}
	return text
}

func containsAny(line string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}

func dropIndices(lines []string, toRemove map[int]struct{}) []string {
	if len(toRemove) == 0 {
		return lines
	}
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if _, drop := toRemove[i]; !drop {
			kept = append(kept, line)
		}
	}
	return kept
}
