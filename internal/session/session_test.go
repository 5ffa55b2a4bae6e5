package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liralabs/lirabot/internal/model"
)

func TestHistory_BoundedFIFO(t *testing.T) {
	h := NewHistory(3) // 6 turns

	for i := 0; i < 10; i++ {
		h.Push(model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("q%d", i)})
	}

	assert.Equal(t, 6, h.Len())
	turns := h.Turns()
	assert.Equal(t, "q4", turns[0].Content, "oldest surviving turn")
	assert.Equal(t, "q9", turns[5].Content, "newest turn")
}

func TestHistory_NeverExceedsCapacity(t *testing.T) {
	h := NewHistory(2)

	for i := 0; i < 100; i++ {
		h.Push(model.Turn{Role: model.RoleUser, Content: "q"})
		h.Push(model.Turn{Role: model.RoleAssistant, Content: "a"})
		assert.LessOrEqual(t, h.Len(), 4)
	}
}

func TestSession_TotalsMatchLog(t *testing.T) {
	s := newSession("c1", 3, time.Now())

	costs := []float64{0.000985, 0.000120, 0.000500}
	var wantCost float64
	var wantTokens int64
	for i, c := range costs {
		s.RecordExchange("q", "a", c, int64(100+i), int64(50+i), time.Now())
		wantCost += c
		wantTokens += int64(100+i) + int64(50+i)
	}

	stats := s.Stats()
	assert.InDelta(t, wantCost, stats.TotalCost, 1e-9)
	assert.Equal(t, wantTokens, stats.TotalTokens)
	assert.Equal(t, len(costs), stats.QueryCount)
	assert.Len(t, s.Log(), len(costs))

	// invariant: totals equal sums over the log
	var logCost float64
	var logTokens int64
	for _, e := range s.Log() {
		logCost += e.Cost
		logTokens += e.InputTokens + e.OutputTokens
	}
	assert.InDelta(t, stats.TotalCost, logCost, 1e-9)
	assert.Equal(t, stats.TotalTokens, logTokens)
}

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore(3, 24*time.Hour)

	s1 := st.GetOrCreate("alice")
	s2 := st.GetOrCreate("alice")
	assert.Same(t, s1, s2)

	s3 := st.GetOrCreate("bob")
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, st.Len())
}

func TestStore_StatsUnknownCustomerIsZero(t *testing.T) {
	st := NewStore(3, 24*time.Hour)

	assert.Equal(t, model.SessionStats{}, st.Stats("never-seen"))

	// created but never queried: counters are still zero
	st.GetOrCreate("fresh")
	assert.Equal(t, model.SessionStats{}, st.Stats("fresh"))
}

func TestStore_SweepEvictsExpiredSessions(t *testing.T) {
	st := NewStore(3, 24*time.Hour)

	clock := time.Now()
	st.now = func() time.Time { return clock }
	st.lastSweep = clock

	old := st.GetOrCreate("old")
	old.StartedAt = clock.Add(-25 * time.Hour)
	st.GetOrCreate("recent")

	// within the TTL window: no sweep yet
	st.GetOrCreate("other")
	require.Equal(t, 3, st.Len())

	// past the sweep interval: the expired session goes
	clock = clock.Add(25 * time.Hour)
	st.GetOrCreate("trigger")

	assert.Nil(t, st.Get("old"), "expired session evicted")
	assert.NotNil(t, st.Get("trigger"))
}

func TestStore_SweepIsPeriodicNotPerRequest(t *testing.T) {
	st := NewStore(3, 24*time.Hour)

	clock := time.Now()
	st.now = func() time.Time { return clock }
	st.lastSweep = clock

	expired := st.GetOrCreate("expired")
	expired.StartedAt = clock.Add(-48 * time.Hour)

	// sweep interval not yet elapsed, so the expired session survives
	st.GetOrCreate("x")
	assert.NotNil(t, st.Get("expired"))
}
