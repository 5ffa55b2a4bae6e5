// Package pricing holds the per-backend rate table and cost arithmetic.
package pricing

import "strings"

// Entry holds per-million-token prices for one backend.
type Entry struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Table maps backend names to their pricing. Lookups are case-insensitive.
type Table map[string]Entry

// DefaultTable contains the configured rates for the supported backends.
// Prices are USD per 1M tokens, verified against vendor pricing pages.
var DefaultTable = Table{
	// Llama 3.3 70B Versatile
	"groq": {InputPerMTok: 0.59, OutputPerMTok: 0.79},
	// GPT-4o-mini
	"openai": {InputPerMTok: 0.150, OutputPerMTok: 0.600},
	// Gemini 2.0 Flash
	"gemini": {InputPerMTok: 0.075, OutputPerMTok: 0.30},
}

// Lookup returns the pricing entry for a backend.
// Returns a zero entry and false if the backend is unknown.
func (t Table) Lookup(backend string) (Entry, bool) {
	e, ok := t[strings.ToLower(backend)]
	return e, ok
}

// Merge returns a copy of t with the given overrides applied.
// Override keys are lowercased so they match Lookup semantics.
func (t Table) Merge(overrides map[string]Entry) Table {
	merged := make(Table, len(t)+len(overrides))
	for k, v := range t {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range overrides {
		merged[strings.ToLower(k)] = v
	}
	return merged
}
