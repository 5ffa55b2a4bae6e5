package chat

import (
	"strings"
	"unicode"
)

// Bengali danda, the full stop used in Bangla text.
const danda = '।'

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == danda
}

// LimitSentences trims text to at most max complete sentences, never cutting
// mid-sentence. If the trimmed text ends on a partial sentence, the partial
// is dropped; if nothing terminal remains, a terminator appropriate to the
// language is appended.
func LimitSentences(text string, max int, lang string) string {
	if text == "" || max < 1 {
		return text
	}

	// Normalize whitespace to keep sentence splitting predictable.
	cleaned := strings.Join(strings.Fields(text), " ")

	parts := splitSentences(cleaned)
	if len(parts) <= max {
		return cleaned
	}

	trimmed := strings.TrimSpace(strings.Join(parts[:max], " "))
	if !endsTerminal(trimmed) {
		trimmed = strings.TrimSpace(stripTrailingPartial(trimmed))
	}
	if trimmed == "" {
		trimmed = cleaned
	}

	if !endsTerminal(trimmed) {
		if lang == "bn" {
			trimmed += string(danda)
		} else {
			trimmed += "."
		}
	}
	return trimmed
}

// splitSentences breaks text at whitespace following terminal punctuation.
func splitSentences(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		parts = append(parts, string(runes[start:i+1]))
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}

	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

func endsTerminal(s string) bool {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	runes := []rune(trimmed)
	return len(runes) > 0 && isTerminal(runes[len(runes)-1])
}

// stripTrailingPartial removes the trailing run of non-terminal characters.
func stripTrailingPartial(s string) string {
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		if isTerminal(runes[i]) {
			return string(runes[:i+1])
		}
	}
	return ""
}
