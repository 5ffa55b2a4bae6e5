package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liralabs/lirabot/internal/model"
)

func TestAverages(t *testing.T) {
	l := New(nil)

	l.Record("groq", 100, 50, 0.000985, 200*time.Millisecond)
	l.Record("groq", 200, 100, 0.001970, 300*time.Millisecond)
	l.Record("openai", 1000, 500, 0.000450, 400*time.Millisecond)

	agg := l.Averages("groq")
	assert.Equal(t, 2, agg.TotalQueries)
	assert.Equal(t, int64(300), agg.TotalInputTokens)
	assert.Equal(t, int64(150), agg.TotalOutputTokens)
	assert.Equal(t, 150.0, agg.AvgInputTokens)
	assert.Equal(t, 75.0, agg.AvgOutputTokens)
	assert.InDelta(t, 0.002955, agg.TotalCost, 1e-6)
	assert.InDelta(t, 0.0014775, agg.AvgCostPerQuery, 1e-8)
}

func TestAverages_NoMatchesReturnsZeroRecord(t *testing.T) {
	l := New(nil)
	l.Record("groq", 100, 50, 0.000985, 0)

	assert.Equal(t, model.BackendAverages{}, l.Averages("gemini"))
}

func TestAverages_CaseSensitiveMatch(t *testing.T) {
	l := New(nil)
	l.Record("groq", 100, 50, 0.000985, 0)

	assert.Zero(t, l.Averages("Groq").TotalQueries)
	assert.Equal(t, 1, l.Averages("groq").TotalQueries)
}

func TestAverages_Idempotent(t *testing.T) {
	l := New(nil)
	l.Record("groq", 100, 50, 0.000985, 0)
	l.Record("groq", 120, 60, 0.001100, 0)

	first := l.Averages("groq")
	second := l.Averages("groq")
	assert.Equal(t, first, second)
}

func TestVerificationLog_AppendsPerBackendLines(t *testing.T) {
	dir := t.TempDir()
	v := NewVerificationLog(dir)

	rec := model.UsageRecord{
		Backend:      "groq",
		InputTokens:  100,
		OutputTokens: 50,
		Cost:         0.000985,
		Timestamp:    time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	require.NoError(t, v.Append(rec))
	require.NoError(t, v.Append(rec))

	data, err := os.ReadFile(filepath.Join(dir, "verification_groq.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "In: 100 | Out: 50 | Cost: $0.00098500")
	assert.Contains(t, lines[0], "2025-03-01 12:30:00")
}

func TestStore_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	l := New(nil, store)
	l.Record("groq", 100, 50, 0.000985, 250*time.Millisecond)
	l.Record("mock", 10, 20, 0, 0)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	backends, err := store.Backends()
	require.NoError(t, err)
	assert.Equal(t, []string{"groq", "mock"}, backends)

	var groq model.UsageRecord
	for _, r := range records {
		if r.Backend == "groq" {
			groq = r
		}
	}
	assert.Equal(t, int64(100), groq.InputTokens)
	assert.Equal(t, int64(50), groq.OutputTokens)
	assert.InDelta(t, 0.000985, groq.Cost, 1e-9)
	assert.Equal(t, 250*time.Millisecond, groq.ResponseLatency)
	assert.NotEmpty(t, groq.ID)
}

func TestSeedRestoresAverages(t *testing.T) {
	src := New(nil)
	src.Record("groq", 100, 50, 0.000985, 0)
	src.Record("groq", 200, 100, 0.001970, 0)

	restored := New(nil)
	restored.Seed([]model.UsageRecord{
		{ID: "a", Backend: "groq", InputTokens: 100, OutputTokens: 50, Cost: 0.000985},
		{ID: "b", Backend: "groq", InputTokens: 200, OutputTokens: 100, Cost: 0.001970},
	})

	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, src.Averages("groq"), restored.Averages("groq"))
}
