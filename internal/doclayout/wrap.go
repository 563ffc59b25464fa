// Package doclayout implements the interactive layout engine (§4.J):
// viewport, indent stack, soft-wrap policy, blockquote marker stack,
// code-block framing, hit-region table, and the keyboard cursor state
// machine, driving lipgloss-styled panes with a scrollable viewport
// over an arbitrary docir.Node tree rather than a fixed set of panes.
package doclayout

import "unicode"

// WrapLine implements the soft-wrap policy (§4.J): search within the
// available width for (1) the last whitespace that doesn't leave a
// <3-char orphan, else the last whitespace at all; (2) failing that,
// the last of ". , ; : ) ] }" + 1; (3) failing that, a
// lowercase->uppercase transition (camelCase). If none exist within
// width, scan forward for the next whitespace: wrap before the word if
// it fits on a fresh line, else hard-break at the last fitting rune
// boundary.
func WrapLine(text string, width int) (line, rest string) {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text, ""
	}

	if idx, ok := lastWhitespaceNoOrphan(runes, width); ok {
		return trimTrailingSpace(string(runes[:idx])), string(trimLeadingSpace(runes[idx:]))
	}
	if idx, ok := lastWhitespace(runes, width); ok {
		return trimTrailingSpace(string(runes[:idx])), string(trimLeadingSpace(runes[idx:]))
	}
	if idx, ok := lastPunctuationBreak(runes, width); ok {
		return string(runes[:idx]), string(runes[idx:])
	}
	if idx, ok := lastCamelCaseBreak(runes, width); ok {
		return string(runes[:idx]), string(runes[idx:])
	}

	// No in-width break point: scan forward for the next whitespace.
	if idx, ok := nextWhitespace(runes, width); ok {
		wordLen := idx
		if wordLen <= width {
			return trimTrailingSpace(string(runes[:idx])), string(trimLeadingSpace(runes[idx:]))
		}
	}
	// Hard break at the last fitting rune boundary.
	return string(runes[:width]), string(runes[width:])
}

func lastWhitespaceNoOrphan(runes []rune, width int) (int, bool) {
	limit := width
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := limit - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			leftLen := i
			rightLen := len(runes) - i - 1
			if leftLen > 0 && !(rightLen > 0 && rightLen < 3) {
				return i, true
			}
		}
	}
	return 0, false
}

func lastWhitespace(runes []rune, width int) (int, bool) {
	limit := width
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := limit - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i, true
		}
	}
	return 0, false
}

func lastPunctuationBreak(runes []rune, width int) (int, bool) {
	limit := width
	if limit > len(runes) {
		limit = len(runes)
	}
	punct := ".,;:)]}"
	for i := limit - 1; i > 0; i-- {
		for _, p := range punct {
			if runes[i] == p && i+1 <= len(runes) {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func lastCamelCaseBreak(runes []rune, width int) (int, bool) {
	limit := width
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := limit - 1; i > 0; i-- {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			return i, true
		}
	}
	return 0, false
}

func nextWhitespace(runes []rune, from int) (int, bool) {
	for i := from; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			return i, true
		}
	}
	return 0, false
}

func trimTrailingSpace(s string) string {
	runes := []rune(s)
	for len(runes) > 0 && unicode.IsSpace(runes[len(runes)-1]) {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func trimLeadingSpace(runes []rune) []rune {
	for len(runes) > 0 && unicode.IsSpace(runes[0]) {
		runes = runes[1:]
	}
	return runes
}

// WrapAll splits text into as many lines as needed at width.
func WrapAll(text string, width int) []string {
	var lines []string
	for {
		line, rest := WrapLine(text, width)
		lines = append(lines, line)
		if rest == "" {
			break
		}
		text = rest
	}
	return lines
}
