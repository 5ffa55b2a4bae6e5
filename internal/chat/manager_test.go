package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liralabs/lirabot/internal/gateway"
	"github.com/liralabs/lirabot/internal/ledger"
	"github.com/liralabs/lirabot/internal/pricing"
	"github.com/liralabs/lirabot/internal/session"
)

type fixedBackend struct {
	name string
	res  gateway.Result
	err  error
}

func (f *fixedBackend) Name() string    { return f.name }
func (f *fixedBackend) Available() bool { return true }

func (f *fixedBackend) Generate(context.Context, string, string) (gateway.Result, error) {
	return f.res, f.err
}

func newTestManager(backends ...gateway.Backend) (*Manager, *ledger.Ledger, *session.Store) {
	gw := gateway.New(nil)
	for _, b := range backends {
		gw.Register(b)
	}
	usage := ledger.New(nil)
	sessions := session.NewStore(3, 24*time.Hour)
	m := NewManager(gw, pricing.NewCalculator(nil), usage, sessions, "system prompt", nil)
	return m, usage, sessions
}

func TestProcessQuery_Success(t *testing.T) {
	backend := &fixedBackend{
		name: "groq",
		res:  gateway.Result{Text: "The serum costs $45. It suits dry skin.", InputTokens: 1000, OutputTokens: 500},
	}
	m, usage, _ := newTestManager(backend)

	text, cost := m.ProcessQuery(context.Background(), "alice", "price?", "groq", "")

	assert.Equal(t, "The serum costs $45. It suits dry skin.", text)
	assert.InDelta(t, 0.000985, cost, 1e-8)

	stats := m.SessionStats("alice")
	assert.Equal(t, 1, stats.QueryCount)
	assert.Equal(t, int64(1500), stats.TotalTokens)
	assert.InDelta(t, cost, stats.TotalCost, 1e-9)

	agg := usage.Averages("groq")
	assert.Equal(t, 1, agg.TotalQueries)
	assert.Equal(t, int64(1000), agg.TotalInputTokens)
}

func TestProcessQuery_TotalCostAccumulates(t *testing.T) {
	backend := &fixedBackend{
		name: "groq",
		res:  gateway.Result{Text: "Answer.", InputTokens: 100, OutputTokens: 50},
	}
	m, _, _ := newTestManager(backend)

	var sum float64
	for i := 0; i < 5; i++ {
		_, cost := m.ProcessQuery(context.Background(), "bob", "q", "groq", "")
		sum += cost
	}

	assert.InDelta(t, sum, m.SessionStats("bob").TotalCost, 1e-9)
	assert.Equal(t, 5, m.SessionStats("bob").QueryCount)
}

func TestProcessQuery_FailureLeavesSessionUntouched(t *testing.T) {
	backend := &fixedBackend{name: "groq", err: errors.New("quota exceeded")}
	m, usage, sessions := newTestManager(backend)

	text, cost := m.ProcessQuery(context.Background(), "carol", "q", "groq", "")

	assert.True(t, strings.HasPrefix(text, "Error: "))
	assert.Zero(t, cost)

	// session exists but records nothing for the failed exchange
	s := sessions.Get("carol")
	require.NotNil(t, s)
	assert.Zero(t, m.SessionStats("carol").QueryCount)
	assert.Zero(t, s.History.Len())
	assert.Empty(t, s.Log())
	assert.Zero(t, usage.Len())
}

func TestProcessQuery_UnknownBackend(t *testing.T) {
	m, _, _ := newTestManager()

	text, cost := m.ProcessQuery(context.Background(), "dave", "q", "nope", "")
	assert.True(t, strings.HasPrefix(text, "Error: "))
	assert.Contains(t, text, "unknown backend")
	assert.Zero(t, cost)
}

func TestProcessQuery_HistoryFlowsIntoTranscript(t *testing.T) {
	seen := make([]string, 0, 2)
	backend := &recordingBackend{
		res: gateway.Result{Text: "Noted.", InputTokens: 10, OutputTokens: 5},
		fn:  func(prompt string) { seen = append(seen, prompt) },
	}
	m, _, _ := newTestManager(backend)

	m.ProcessQuery(context.Background(), "erin", "first question", "rec", "")
	m.ProcessQuery(context.Background(), "erin", "second question", "rec", "")

	require.Len(t, seen, 2)
	assert.Equal(t, "User: first question", seen[0])
	assert.Equal(t, "User: first question\nAssistant: Noted.\nUser: second question", seen[1])
}

func TestProcessQuery_HistoryBounded(t *testing.T) {
	backend := &fixedBackend{
		name: "groq",
		res:  gateway.Result{Text: "ok.", InputTokens: 1, OutputTokens: 1},
	}
	m, _, sessions := newTestManager(backend)

	for i := 0; i < 10; i++ {
		m.ProcessQuery(context.Background(), "frank", "q", "groq", "")
	}

	assert.Equal(t, 6, sessions.Get("frank").History.Len())
	assert.Equal(t, 10, m.SessionStats("frank").QueryCount)
}

func TestProcessQuery_BanglaTrimsToTwoSentences(t *testing.T) {
	backend := &fixedBackend{
		name: "groq",
		res:  gateway.Result{Text: "One. Two. Three. Four.", InputTokens: 10, OutputTokens: 10},
	}
	m, _, _ := newTestManager(backend)

	text, _ := m.ProcessQuery(context.Background(), "gita", "q", "groq", "bn")
	assert.Equal(t, "One. Two.", text)
}

func TestSessionStats_UnknownCustomerIsZero(t *testing.T) {
	m, _, _ := newTestManager()
	assert.Zero(t, m.SessionStats("nobody"))
}

type recordingBackend struct {
	res gateway.Result
	fn  func(prompt string)
}

func (r *recordingBackend) Name() string    { return "rec" }
func (r *recordingBackend) Available() bool { return true }

func (r *recordingBackend) Generate(_ context.Context, prompt, _ string) (gateway.Result, error) {
	r.fn(prompt)
	return r.res, nil
}
