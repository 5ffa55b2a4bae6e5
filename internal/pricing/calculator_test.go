package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost_OneMillionTokensMatchesRate(t *testing.T) {
	calc := NewCalculator(nil)

	for backend, entry := range DefaultTable {
		assert.InDelta(t, entry.InputPerMTok, calc.Cost(backend, 1_000_000, 0), 1e-8,
			"input rate for %s", backend)
		assert.InDelta(t, entry.OutputPerMTok, calc.Cost(backend, 0, 1_000_000), 1e-8,
			"output rate for %s", backend)
	}
}

func TestCost_KnownScenario(t *testing.T) {
	calc := NewCalculator(nil)

	// groq: 1000/1M * 0.59 + 500/1M * 0.79 = 0.000985
	assert.InDelta(t, 0.000985, calc.Cost("groq", 1000, 500), 1e-8)
}

func TestCost_CaseInsensitiveLookup(t *testing.T) {
	calc := NewCalculator(nil)

	assert.Equal(t, calc.Cost("groq", 1000, 500), calc.Cost("GROQ", 1000, 500))
}

func TestCost_UnknownBackendIsFree(t *testing.T) {
	calc := NewCalculator(nil)

	assert.Zero(t, calc.Cost("unknown_model", 100, 100))
	assert.Zero(t, calc.Cost("unknown_model", 5_000_000, 5_000_000))
}

func TestCost_ZeroTokens(t *testing.T) {
	calc := NewCalculator(nil)

	assert.Zero(t, calc.Cost("groq", 0, 0))
}

func TestProjectDaily(t *testing.T) {
	calc := NewCalculator(nil)

	proj, ok := calc.ProjectDaily(225, 100, 50, "groq")
	require.True(t, ok)

	assert.Equal(t, 22500.0, proj.InputTokens)
	assert.Equal(t, 11250.0, proj.OutputTokens)
	// 22500/1M * 0.59 + 11250/1M * 0.79 = 0.0221625, rounded to 6 decimals
	assert.InDelta(t, 0.022163, proj.TotalCost, 1e-5)
}

func TestProjectDaily_UnknownBackend(t *testing.T) {
	calc := NewCalculator(nil)

	proj, ok := calc.ProjectDaily(100, 100, 100, "nonexistent")
	assert.False(t, ok)
	assert.Zero(t, proj)
}

func TestVoiceCosts(t *testing.T) {
	calc := NewCalculator(nil)

	// 60s of audio = 1 minute at $0.111/hour
	stt, tts := calc.VoiceCosts(60, 500)
	assert.InDelta(t, 0.111/60, stt, 1e-8)
	assert.Zero(t, tts, "Edge TTS is free")
}

func TestMerge_OverridesAndPreservesDefaults(t *testing.T) {
	table := DefaultTable.Merge(map[string]Entry{
		"Groq":   {InputPerMTok: 1.0, OutputPerMTok: 2.0},
		"custom": {InputPerMTok: 5.0, OutputPerMTok: 10.0},
	})

	e, ok := table.Lookup("groq")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.InputPerMTok)

	_, ok = table.Lookup("CUSTOM")
	assert.True(t, ok)

	_, ok = table.Lookup("openai")
	assert.True(t, ok)
}
