package gateway

import (
	"context"
	"strings"
)

// mockBackend is a fully offline deterministic backend used for testing
// and simulation. It never performs network I/O; token counts are derived
// from word counts of the prompt and response.
type mockBackend struct{}

// NewMock returns the offline mock backend. It is always available.
func NewMock() Backend {
	return mockBackend{}
}

func (mockBackend) Name() string { return "mock" }

func (mockBackend) Available() bool { return true }

func (mockBackend) Generate(_ context.Context, prompt, _ string) (Result, error) {
	lower := strings.ToLower(prompt)

	var text string
	switch {
	case strings.Contains(lower, "brand"):
		text = "We have several great brands like Lira Luxe, PureBasics, and EyeCatch. Each offers unique products for different skin needs."
	case strings.Contains(lower, "price"), strings.Contains(lower, "cost"), strings.Contains(lower, "how much"):
		text = "Our products range from $14 to $55. For example, the Hydra Glow Serum is $45, while our Velvet Lip Liner is $14."
	case strings.Contains(lower, "skin"):
		text = "We have products for all skin types including Dry, Oily, Sensitive, and Mature. The Hydra Glow Serum is excellent for Dry skin."
	case strings.Contains(lower, "ingredient"):
		text = "Our products use high-quality ingredients like Hyaluronic Acid, Vitamin C, and Aloe Vera to ensure the best results."
	default:
		text = "That's a great question about Lira Cosmetics! I recommend checking our product catalog for more details on our range."
	}

	return Result{
		Text:         text,
		InputTokens:  int64(len(strings.Fields(prompt))),
		OutputTokens: int64(len(strings.Fields(text))),
	}, nil
}
