package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitSentences_SixToFour(t *testing.T) {
	text := "One. Two! Three? Four. Five. Six."

	got := LimitSentences(text, 4, "")
	assert.Equal(t, "One. Two! Three? Four.", got)
}

func TestLimitSentences_UnderBudgetUnchanged(t *testing.T) {
	text := "Just one sentence."
	assert.Equal(t, text, LimitSentences(text, 4, ""))

	text = "Two here. And this."
	assert.Equal(t, text, LimitSentences(text, 4, ""))
}

func TestLimitSentences_NormalizesWhitespace(t *testing.T) {
	text := "Spaced   out.\n\nSecond  sentence. Third one. Fourth here. Fifth tail."

	got := LimitSentences(text, 2, "")
	assert.Equal(t, "Spaced out. Second sentence.", got)
}

func TestLimitSentences_NeverEndsMidSentence(t *testing.T) {
	texts := []string{
		"Alpha. Beta. Gamma. Delta. Epsilon. Zeta.",
		"Hello! How are you? I am fine. Thanks for asking. Bye now. See you.",
		"A. B. C. D. E trailing without punctuation",
	}

	for _, text := range texts {
		got := LimitSentences(text, 3, "")
		runes := []rune(strings.TrimSpace(got))
		last := runes[len(runes)-1]
		assert.True(t, isTerminal(last), "result %q ends mid-sentence", got)
	}
}

func TestLimitSentences_BengaliDanda(t *testing.T) {
	text := "প্রথম বাক্য। দ্বিতীয় বাক্য। তৃতীয় বাক্য। চতুর্থ বাক্য।"

	got := LimitSentences(text, 2, "bn")
	assert.Equal(t, "প্রথম বাক্য। দ্বিতীয় বাক্য।", got)
}

func TestLimitSentences_NoTerminatorsAnywhere(t *testing.T) {
	// a single unterminated run is one sentence, under budget, unchanged
	text := "no punctuation at all here"
	assert.Equal(t, text, LimitSentences(text, 4, ""))
}

func TestLimitSentences_DropsTrailingPartial(t *testing.T) {
	text := "First. Second. Third. Fourth. Fifth without an end"

	got := LimitSentences(text, 3, "")
	assert.Equal(t, "First. Second. Third.", got)
}

func TestLimitSentences_Empty(t *testing.T) {
	assert.Equal(t, "", LimitSentences("", 4, ""))
}
