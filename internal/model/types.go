// Package model defines domain types for lirabot conversations and usage accounting.
package model

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation history.
type Turn struct {
	Role    Role
	Content string
}

// Exchange is one completed query/response pair recorded in a session log.
type Exchange struct {
	Timestamp    time.Time
	Query        string
	Response     string
	Cost         float64
	InputTokens  int64
	OutputTokens int64
}

// UsageRecord is one completed exchange as seen by the usage ledger.
// Records are immutable once appended.
type UsageRecord struct {
	ID              string
	Backend         string
	InputTokens     int64
	OutputTokens    int64
	Cost            float64
	ResponseLatency time.Duration
	Timestamp       time.Time
}

// SessionStats holds the running totals for one customer session.
type SessionStats struct {
	TotalCost   float64
	TotalTokens int64
	QueryCount  int
}

// BackendAverages holds aggregate usage statistics for a single backend.
// A zero value is returned when no records match, so downstream reporting
// arithmetic stays divide-by-zero-safe.
type BackendAverages struct {
	TotalQueries      int
	AvgInputTokens    float64
	AvgOutputTokens   float64
	AvgCostPerQuery   float64
	TotalInputTokens  int64
	TotalOutputTokens int64
	TotalCost         float64
}
