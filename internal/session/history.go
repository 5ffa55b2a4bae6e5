package session

import "github.com/liralabs/lirabot/internal/model"

// History is a capacity-bounded FIFO window of conversation turns.
// When full, pushing evicts the oldest turn.
type History struct {
	turns []model.Turn
	cap   int
}

// NewHistory returns a history bounded to the given number of exchanges.
// Each exchange is a user turn plus an assistant turn.
func NewHistory(exchanges int) *History {
	if exchanges < 1 {
		exchanges = 1
	}
	return &History{cap: exchanges * 2}
}

// Push appends a turn, evicting the oldest when over capacity.
func (h *History) Push(t model.Turn) {
	h.turns = append(h.turns, t)
	if len(h.turns) > h.cap {
		h.turns = h.turns[len(h.turns)-h.cap:]
	}
}

// Len returns the number of retained turns.
func (h *History) Len() int { return len(h.turns) }

// Turns returns the retained turns, oldest first.
// The returned slice must not be mutated.
func (h *History) Turns() []model.Turn { return h.turns }
