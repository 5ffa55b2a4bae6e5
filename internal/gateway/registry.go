package gateway

import (
	"github.com/liralabs/lirabot/internal/config"

	"go.uber.org/zap"
)

// NewFromConfig builds a gateway with every known backend registered.
// Backends without credentials stay registered but unavailable.
func NewFromConfig(cfg config.Config, log *zap.Logger) *Gateway {
	maxTokens := cfg.General.MaxTokens

	g := New(log)
	g.Register(NewGroq(cfg.APIKey("groq"), config.GroqModelName, maxTokens))
	g.Register(NewOpenAI(cfg.APIKey("openai"), config.OpenAIModelName, maxTokens))
	g.Register(NewGemini(cfg.APIKey("gemini"), config.GeminiModelName))
	g.Register(NewMock())
	return g
}
