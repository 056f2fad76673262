package stats

import (
	"math"

	"github.com/verte-zerg/reflex/internal/model"
)

// HistorySize is the number of recent attempts kept per session.
const HistorySize = 10

// History keeps the most recent attempts, newest first.
type History struct {
	attempts []model.Attempt
}

// Add prepends an attempt, evicting the oldest once HistorySize is reached.
func (h *History) Add(a model.Attempt) {
	next := make([]model.Attempt, 0, HistorySize)
	next = append(next, a)
	for _, prev := range h.attempts {
		if len(next) == HistorySize {
			break
		}
		next = append(next, prev)
	}
	h.attempts = next
}

// Attempts returns a copy of the history, newest first.
func (h *History) Attempts() []model.Attempt {
	out := make([]model.Attempt, len(h.attempts))
	copy(out, h.attempts)
	return out
}

// Len returns the number of attempts held.
func (h *History) Len() int {
	return len(h.attempts)
}

// Clear drops all attempts.
func (h *History) Clear() {
	h.attempts = nil
}

// Average returns the rounded mean reaction time. ok is false for no attempts.
func Average(attempts []model.Attempt) (avg int, ok bool) {
	if len(attempts) == 0 {
		return 0, false
	}
	sum := 0
	for _, a := range attempts {
		sum += a.Time
	}
	return int(math.Round(float64(sum) / float64(len(attempts)))), true
}

// NextBest returns the best time after recording reaction.
func NextBest(best *int, reaction int) *int {
	if best != nil && *best <= reaction {
		return best
	}
	v := reaction
	return &v
}

// Rating describes a reaction time.
func Rating(ms int) string {
	switch {
	case ms < 150:
		return "Incredible! Are you a pro gamer?"
	case ms < 200:
		return "Excellent! Lightning fast."
	case ms < 250:
		return "Great job! Faster than average."
	case ms < 300:
		return "Good. Average human reaction."
	case ms < 400:
		return "Not bad, keep practicing!"
	default:
		return "A bit slow. Wake up!"
	}
}
