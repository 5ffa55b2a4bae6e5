// Package session tracks per-customer conversational state: a bounded
// history window, running totals, and an append-only exchange log.
package session

import (
	"sync"
	"time"

	"github.com/liralabs/lirabot/internal/model"
)

// Session holds one customer's conversation state.
// Callers must serialize mutation per customer; the store hands out the
// session's lock for that purpose.
type Session struct {
	CustomerID string
	History    *History
	StartedAt  time.Time

	totalCost   float64
	totalTokens int64
	queryCount  int
	log         []model.Exchange

	mu sync.Mutex
}

func newSession(customerID string, historyExchanges int, now time.Time) *Session {
	return &Session{
		CustomerID: customerID,
		History:    NewHistory(historyExchanges),
		StartedAt:  now,
	}
}

// Lock serializes in-flight exchanges for this customer.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// RecordExchange absorbs one successful exchange: both turns enter the
// bounded history, counters advance, and the exchange is appended to the log.
func (s *Session) RecordExchange(query, response string, cost float64, inputTokens, outputTokens int64, at time.Time) {
	s.History.Push(model.Turn{Role: model.RoleUser, Content: query})
	s.History.Push(model.Turn{Role: model.RoleAssistant, Content: response})

	s.totalCost += cost
	s.totalTokens += inputTokens + outputTokens
	s.queryCount++

	s.log = append(s.log, model.Exchange{
		Timestamp:    at,
		Query:        query,
		Response:     response,
		Cost:         cost,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	})
}

// Stats returns the session's running totals.
func (s *Session) Stats() model.SessionStats {
	return model.SessionStats{
		TotalCost:   s.totalCost,
		TotalTokens: s.totalTokens,
		QueryCount:  s.queryCount,
	}
}

// Log returns the append-only exchange log, oldest first.
func (s *Session) Log() []model.Exchange { return s.log }
