// Package pruner implements greedy, priority-agnostic admission of
// candidate plans against a growing set of already-accepted scheduled
// intervals.
package pruner

import (
	"fmt"

	"github.com/chesscollective/tourplan/pkg/conflict"
	"github.com/chesscollective/tourplan/pkg/domain"
)

// UsurpationError is raised by PruneStrict when a candidate is blocked
// exclusively by existing/accepted intervals of strictly lower Freq —
// a sign that the caller violated its priority-ordering contract rather
// than a defect in the pruner itself.
type UsurpationError struct {
	Candidate domain.Plan
	Conflicts []domain.ScheduledInterval
}

func (e *UsurpationError) Error() string {
	return fmt.Sprintf("usurpation: candidate (freq=%s) blocked by %d lower-frequency scheduled event(s)",
		e.Candidate.Schedule.Freq, len(e.Conflicts))
}

// Prune returns the sublist of candidates that may be admitted, in
// input order. It grows an accumulator seeded from existing and accepts
// a candidate iff it conflicts with nothing already in the accumulator.
//
// Complexity is O(len(candidates) * len(accumulator)); both are expected
// to be small (tens to low hundreds per planning pass).
func Prune(existing []domain.ScheduledInterval, candidates []domain.Plan) []domain.Plan {
	accepted := make([]domain.ScheduledInterval, len(existing), len(existing)+len(candidates))
	copy(accepted, existing)

	admitted := make([]domain.Plan, 0, len(candidates))
	for _, p := range candidates {
		pInterval := domain.FromPlan(p)
		if conflictsWithAny(pInterval, accepted) {
			continue
		}
		accepted = append(accepted, pInterval)
		admitted = append(admitted, p)
	}
	return admitted
}

// PruneStrict behaves exactly like Prune but uses the usurpation-
// detecting conflict check: if a candidate would be rejected, and every
// one of its conflicts comes from a strictly-lower-Freq scheduled
// interval, it returns a *UsurpationError instead of silently dropping
// the candidate.
func PruneStrict(existing []domain.ScheduledInterval, candidates []domain.Plan) ([]domain.Plan, error) {
	accepted := make([]domain.ScheduledInterval, len(existing), len(existing)+len(candidates))
	copy(accepted, existing)

	admitted := make([]domain.Plan, 0, len(candidates))
	for _, p := range candidates {
		pInterval := domain.FromPlan(p)
		conflicts := conflictingIntervals(pInterval, accepted)
		if len(conflicts) == 0 {
			accepted = append(accepted, pInterval)
			admitted = append(admitted, p)
			continue
		}
		if err := checkUsurp(p, conflicts); err != nil {
			return nil, err
		}
		// Blocked, but legitimately so (at least one conflict is
		// same-or-higher Freq): drop the candidate, same as Prune.
	}
	return admitted, nil
}

// checkUsurp returns a *UsurpationError iff every conflicting interval
// has strictly lower Freq than the candidate.
func checkUsurp(p domain.Plan, conflicts []domain.ScheduledInterval) error {
	for _, c := range conflicts {
		if c.Schedule.Freq >= p.Schedule.Freq {
			return nil
		}
	}
	return &UsurpationError{Candidate: p, Conflicts: conflicts}
}

func conflictsWithAny(p domain.ScheduledInterval, scheds []domain.ScheduledInterval) bool {
	for _, s := range scheds {
		if conflict.Conflicts(p, s) {
			return true
		}
	}
	return false
}

func conflictingIntervals(p domain.ScheduledInterval, scheds []domain.ScheduledInterval) []domain.ScheduledInterval {
	var out []domain.ScheduledInterval
	for _, s := range scheds {
		if conflict.Conflicts(p, s) {
			out = append(out, s)
		}
	}
	return out
}
