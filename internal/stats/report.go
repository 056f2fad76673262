package stats

import (
	"context"

	"github.com/verte-zerg/reflex/internal/model"
)

// AttemptSource lists archived attempts in chronological order.
type AttemptSource interface {
	ListAttempts(ctx context.Context, filter model.AttemptFilter) ([]model.ArchivedAttempt, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts []model.ArchivedAttempt
	Sessions int
	Best     int
	Average  int
}

// BuildReport loads and aggregates archived attempts.
func BuildReport(ctx context.Context, src AttemptSource, filter model.AttemptFilter) (Report, error) {
	attempts, err := src.ListAttempts(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	if filter.Last > 0 && len(attempts) > filter.Last {
		attempts = attempts[len(attempts)-filter.Last:]
	}
	report := Report{Attempts: attempts}
	if len(attempts) == 0 {
		return report, nil
	}

	sessions := map[string]struct{}{}
	asAttempts := make([]model.Attempt, len(attempts))
	var best *int
	for i, a := range attempts {
		sessions[a.SessionID] = struct{}{}
		asAttempts[i] = model.Attempt{Timestamp: a.RecordedAt.UnixMilli(), Time: a.ReactionMs}
		best = NextBest(best, a.ReactionMs)
	}
	report.Sessions = len(sessions)
	report.Best = *best
	report.Average, _ = Average(asAttempts)
	return report, nil
}
