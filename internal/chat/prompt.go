package chat

import (
	"strings"

	"github.com/liralabs/lirabot/internal/model"
)

const (
	banglaUIInstruction = "\nIMPORTANT: The user may speak Bangla. " +
		"Translate the user's input to English internally for reasoning, " +
		"but respond in Bangla (বাংলা) for the user. " +
		"Keep responses very short (1-2 sentences) and to the point.\n"

	banglaInputInstruction = "\nIMPORTANT: The user's input may be Bangla. " +
		"Translate it to English internally and respond in English.\n"
)

// BuildTranscript renders the bounded history as a linear transcript with
// the new query as the final user turn.
func BuildTranscript(turns []model.Turn, query string) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(capitalizeRole(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(query)
	return b.String()
}

// AugmentSystemPrompt applies the language policy. A Bangla UI asks the
// backend to reason in English but answer briefly in Bangla; an English UI
// with Bangla input asks for internal translation and an English answer.
// This is prompt construction only; no translation happens here.
func AugmentSystemPrompt(systemPrompt, uiLanguage, query string) string {
	if uiLanguage == "bn" {
		return systemPrompt + banglaUIInstruction
	}
	if containsBengali(query) {
		return systemPrompt + banglaInputInstruction
	}
	return systemPrompt
}

// MaxSentencesFor returns the response budget for a target language.
// Bangla gets a tighter budget since its script is denser.
func MaxSentencesFor(uiLanguage string) int {
	if uiLanguage == "bn" {
		return 2
	}
	return 4
}

func containsBengali(s string) bool {
	for _, r := range s {
		if r >= 0x0980 && r <= 0x09FF {
			return true
		}
	}
	return false
}

func capitalizeRole(r model.Role) string {
	switch r {
	case model.RoleUser:
		return "User"
	case model.RoleAssistant:
		return "Assistant"
	}
	return string(r)
}
