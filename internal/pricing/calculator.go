package pricing

import "math"

// Speech rates. STT is Groq Whisper Large V3 at $0.111 per hour;
// TTS is Edge TTS, which is free.
const (
	sttPricePerHour = 0.111
	sttPricePerMin  = sttPricePerHour / 60
	ttsPricePerChar = 0.0
)

// Calculator performs cost arithmetic over a pricing table.
// It holds no mutable state; every method is deterministic for its inputs.
type Calculator struct {
	table Table
}

// NewCalculator returns a calculator over the given table.
// A nil table falls back to DefaultTable.
func NewCalculator(table Table) *Calculator {
	if table == nil {
		table = DefaultTable
	}
	return &Calculator{table: table}
}

// Cost computes the USD cost of a single exchange.
// Unknown backends are priced as free rather than erroring.
// Input cost and output cost are computed separately then summed, so the
// result does not depend on floating-point evaluation order.
func (c *Calculator) Cost(backend string, inputTokens, outputTokens int64) float64 {
	entry, ok := c.table.Lookup(backend)
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000_000 * entry.InputPerMTok
	outputCost := float64(outputTokens) / 1_000_000 * entry.OutputPerMTok

	return roundTo(inputCost+outputCost, 8)
}

// DailyProjection estimates daily usage and cost from per-query averages.
type DailyProjection struct {
	InputTokens  float64
	OutputTokens float64
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
}

// ProjectDaily scales average per-query usage to a full day.
// Returns false if the backend has no pricing entry.
func (c *Calculator) ProjectDaily(queriesPerDay int, avgInput, avgOutput float64, backend string) (DailyProjection, bool) {
	entry, ok := c.table.Lookup(backend)
	if !ok {
		return DailyProjection{}, false
	}

	dailyInput := float64(queriesPerDay) * avgInput
	dailyOutput := float64(queriesPerDay) * avgOutput

	inputCost := dailyInput / 1_000_000 * entry.InputPerMTok
	outputCost := dailyOutput / 1_000_000 * entry.OutputPerMTok

	return DailyProjection{
		InputTokens:  roundTo(dailyInput, 2),
		OutputTokens: roundTo(dailyOutput, 2),
		InputCost:    roundTo(inputCost, 6),
		OutputCost:   roundTo(outputCost, 6),
		TotalCost:    roundTo(inputCost+outputCost, 6),
	}, true
}

// VoiceCosts prices one voice interaction: speech-to-text by audio duration,
// text-to-speech by character count.
func (c *Calculator) VoiceCosts(audioDurationSecs float64, textCharCount int) (sttCost, ttsCost float64) {
	sttCost = roundTo(audioDurationSecs/60.0*sttPricePerMin, 8)
	ttsCost = roundTo(float64(textCharCount)*ttsPricePerChar, 8)
	return sttCost, ttsCost
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
