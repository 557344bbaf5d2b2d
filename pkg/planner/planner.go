// Package planner composes the conflict predicate, pruner, and stagger
// assigner into the two entry points external callers use: Plan and
// PlanStrict.
//
// The core is single-threaded, synchronous, and allocates no shared
// state: every value is consumed by value or immutable reference and
// outputs are freshly constructed. There is no I/O, no randomness, and
// no clock read — identical inputs always produce identical outputs.
package planner

import (
	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/pruner"
	"github.com/chesscollective/tourplan/pkg/stagger"
)

// Plan is the production entry point. It prunes candidates against
// existing scheduled tournaments and each other (in input order), then
// assigns each admitted plan a staggered start, and returns the
// admitted plans in their original relative order.
//
// Plans that cannot be admitted are silently dropped — pruning is the
// purpose of the function, not an error condition.
func Plan(existing []domain.Tournament, candidates []domain.Plan) []domain.Plan {
	admitted := pruner.Prune(existingScheduled(existing), candidates)
	return stagger.Assign(existing, admitted)
}

// PlanStrict has identical semantics to Plan but uses the
// usurpation-detecting pruner: if a candidate is blocked exclusively by
// existing/accepted intervals of strictly lower Freq, it returns a
// *pruner.UsurpationError instead of silently dropping the candidate.
// This indicates the caller's priority ordering is wrong — it is not a
// planner defect — so production code should use Plan and reserve
// PlanStrict for tests that assert on the caller's ordering contract.
func PlanStrict(existing []domain.Tournament, candidates []domain.Plan) ([]domain.Plan, error) {
	admitted, err := pruner.PruneStrict(existingScheduled(existing), candidates)
	if err != nil {
		return nil, err
	}
	return stagger.Assign(existing, admitted), nil
}

// existingScheduled builds the ScheduledInterval view of every existing
// tournament that carries a Schedule. Tournaments with no schedule
// still affect stagger spacing (via the full existing list passed to
// stagger.Assign) but never participate in conflict pruning.
func existingScheduled(existing []domain.Tournament) []domain.ScheduledInterval {
	out := make([]domain.ScheduledInterval, 0, len(existing))
	for _, t := range existing {
		if t.Schedule == nil {
			continue
		}
		out = append(out, domain.FromTournament(t))
	}
	return out
}
