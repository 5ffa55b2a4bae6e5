// Package ledger keeps the append-only record of completed exchanges and
// computes per-backend aggregate statistics.
package ledger

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liralabs/lirabot/internal/model"
)

// Sink receives every appended record for durable storage.
type Sink interface {
	Append(rec model.UsageRecord) error
}

// Ledger is the in-memory audit trail. Records are never mutated or removed;
// unlike sessions, the ledger has no TTL.
type Ledger struct {
	mu      sync.Mutex
	records []model.UsageRecord

	sinks []Sink
	log   *zap.Logger
}

// New returns an empty ledger. Optional sinks receive every record;
// a sink failure is logged and does not fail the exchange.
func New(log *zap.Logger, sinks ...Sink) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{sinks: sinks, log: log}
}

// Record appends one completed exchange.
func (l *Ledger) Record(backend string, inputTokens, outputTokens int64, cost float64, latency time.Duration) model.UsageRecord {
	rec := model.UsageRecord{
		ID:              uuid.NewString(),
		Backend:         backend,
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		Cost:            cost,
		ResponseLatency: latency,
		Timestamp:       time.Now(),
	}

	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()

	for _, s := range l.sinks {
		if err := s.Append(rec); err != nil {
			l.log.Warn("ledger sink append failed",
				zap.String("backend", backend),
				zap.Error(err))
		}
	}

	return rec
}

// Seed loads previously persisted records without notifying sinks,
// for rebuilding aggregates from a durable store.
func (l *Ledger) Seed(recs []model.UsageRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, recs...)
}

// Len returns the number of recorded exchanges.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Averages aggregates all records for one backend. The match on the stored
// backend name is case-sensitive. With no matching records the zero-valued
// aggregate is returned rather than an error.
func (l *Ledger) Averages(backend string) model.BackendAverages {
	l.mu.Lock()
	defer l.mu.Unlock()

	var agg model.BackendAverages
	for _, r := range l.records {
		if r.Backend != backend {
			continue
		}
		agg.TotalQueries++
		agg.TotalInputTokens += r.InputTokens
		agg.TotalOutputTokens += r.OutputTokens
		agg.TotalCost += r.Cost
	}

	if agg.TotalQueries == 0 {
		return agg
	}

	n := float64(agg.TotalQueries)
	agg.AvgInputTokens = roundTo(float64(agg.TotalInputTokens)/n, 2)
	agg.AvgOutputTokens = roundTo(float64(agg.TotalOutputTokens)/n, 2)
	agg.AvgCostPerQuery = roundTo(agg.TotalCost/n, 8)
	agg.TotalCost = roundTo(agg.TotalCost, 6)

	return agg
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
