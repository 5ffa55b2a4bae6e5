// Package chat orchestrates sessions, the model gateway, cost accounting,
// and the usage ledger into a single query-processing pipeline.
package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/liralabs/lirabot/internal/gateway"
	"github.com/liralabs/lirabot/internal/ledger"
	"github.com/liralabs/lirabot/internal/model"
	"github.com/liralabs/lirabot/internal/pricing"
	"github.com/liralabs/lirabot/internal/session"
)

// Manager is the conversation orchestrator for all customers.
type Manager struct {
	gw           *gateway.Gateway
	calc         *pricing.Calculator
	usage        *ledger.Ledger
	sessions     *session.Store
	systemPrompt string
	log          *zap.Logger
}

// NewManager wires the orchestrator. systemPrompt already has the product
// catalog substituted in.
func NewManager(gw *gateway.Gateway, calc *pricing.Calculator, usage *ledger.Ledger, sessions *session.Store, systemPrompt string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		gw:           gw,
		calc:         calc,
		usage:        usage,
		sessions:     sessions,
		systemPrompt: systemPrompt,
		log:          log,
	}
}

// ProcessQuery runs one customer query end to end and returns the trimmed
// response text with its cost. Gateway failures come back as an
// "Error: ..." response with zero cost; the session is left untouched so
// only successful exchanges are recorded.
func (m *Manager) ProcessQuery(ctx context.Context, customerID, query, backend, uiLanguage string) (string, float64) {
	s := m.sessions.GetOrCreate(customerID)
	s.Lock()
	defer s.Unlock()

	transcript := BuildTranscript(s.History.Turns(), query)
	systemPrompt := AugmentSystemPrompt(m.systemPrompt, uiLanguage, query)

	start := time.Now()
	res, err := m.gw.Generate(ctx, backend, transcript, systemPrompt)
	latency := time.Since(start)

	if err != nil {
		m.log.Warn("query failed",
			zap.String("customer", customerID),
			zap.String("backend", backend),
			zap.Error(err))
		return "Error: " + err.Error(), 0
	}

	response := LimitSentences(res.Text, MaxSentencesFor(uiLanguage), uiLanguage)
	cost := m.calc.Cost(backend, res.InputTokens, res.OutputTokens)

	m.usage.Record(backend, res.InputTokens, res.OutputTokens, cost, latency)
	s.RecordExchange(query, response, cost, res.InputTokens, res.OutputTokens, time.Now())

	m.log.Debug("query processed",
		zap.String("customer", customerID),
		zap.String("backend", backend),
		zap.Int64("input_tokens", res.InputTokens),
		zap.Int64("output_tokens", res.OutputTokens),
		zap.Float64("cost", cost),
		zap.Duration("latency", latency))

	return response, cost
}

// SessionStats returns the running totals for a customer. Unknown customers
// get zero-valued stats.
func (m *Manager) SessionStats(customerID string) model.SessionStats {
	return m.sessions.Stats(customerID)
}

// SessionLog returns the exchange log for a customer, nil if no
// session exists.
func (m *Manager) SessionLog(customerID string) []model.Exchange {
	s := m.sessions.Get(customerID)
	if s == nil {
		return nil
	}
	s.Lock()
	defer s.Unlock()
	return s.Log()
}

// Usage exposes the ledger for reporting.
func (m *Manager) Usage() *ledger.Ledger { return m.usage }
