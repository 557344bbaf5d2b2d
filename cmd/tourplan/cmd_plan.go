package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/planner"
)

var (
	planStrict bool
	planJSON   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Prune conflicting candidates and assign stagger offsets",
	Long: `plan reads existing tournaments and candidate plans from the
store, runs the planner against them, prints the admitted set, and
persists the resulting stagger for every admitted plan.

Under --strict, a candidate blocked only by strictly-lower-importance
commitments fails the run instead of being silently dropped, and the
command exits 2.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planStrict, "strict", false, "fail on usurpation instead of silently pruning")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "JSON output")
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	existing, err := a.store.LoadTournaments()
	if err != nil {
		return fmt.Errorf("load tournaments: %w", err)
	}
	records, candidates, err := a.store.LoadPlans()
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}

	if err := a.store.ClearPlanResults(); err != nil {
		return fmt.Errorf("clear previous plan results: %w", err)
	}

	var admitted []domain.Plan
	if planStrict {
		admitted, err = planner.PlanStrict(existing, candidates)
		if err != nil {
			return err
		}
	} else {
		admitted = planner.Plan(existing, candidates)
	}

	type planResult struct {
		ID         string `json:"id"`
		Admitted   bool   `json:"admitted"`
		StartsAtMs int64  `json:"starts_at_ms"`
		StaggerMs  int64  `json:"stagger_ms"`
	}
	results := make([]planResult, 0, len(records))

	admittedIdx := 0
	for i, rec := range records {
		nominal := candidates[i]
		admittedPlan, isAdmitted := nextAdmitted(admitted, &admittedIdx, nominal)
		if !isAdmitted {
			a.logger.Debug().Str("plan_id", rec.ID).Msg("candidate rejected")
			if err := a.store.UpdatePlanResult(rec.ID, false, nil); err != nil {
				return fmt.Errorf("record rejection for %s: %w", rec.ID, err)
			}
			results = append(results, planResult{ID: rec.ID, Admitted: false, StartsAtMs: rec.StartsAtMs})
			continue
		}
		staggerMs := int64(admittedPlan.StartsAt) - rec.StartsAtMs
		if err := a.store.UpdatePlanResult(rec.ID, true, &staggerMs); err != nil {
			return fmt.Errorf("record admission for %s: %w", rec.ID, err)
		}
		results = append(results, planResult{
			ID: rec.ID, Admitted: true,
			StartsAtMs: int64(admittedPlan.StartsAt), StaggerMs: staggerMs,
		})
	}

	if planJSON {
		printJSON(results)
		return nil
	}

	admittedCount := 0
	for _, r := range results {
		marker := "rejected"
		if r.Admitted {
			marker = "admitted"
			admittedCount++
		}
		fmt.Printf("%-36s %-9s starts_at_ms=%-14d stagger_ms=%d\n", r.ID, marker, r.StartsAtMs, r.StaggerMs)
	}
	fmt.Printf("\n%d/%d candidates admitted\n", admittedCount, len(results))
	return nil
}

// nextAdmitted matches a plan record to its corresponding admitted
// domain.Plan. Both pruner.Prune/PruneStrict and stagger.Assign return
// their output as an order-preserving subsequence of candidates — never
// reordering, never duplicating — so walking records/candidates and
// admitted together with a single shared cursor is sufficient: the
// candidate at admittedIdx, if it matches nominal's identity at all, is
// necessarily the match, regardless of whether some other candidate
// elsewhere in the run shares the same (AtInstant, Duration, Freq).
//
// matchesNominal still guards against matching the wrong candidate in a
// way that would otherwise fail silently (e.g. a pruner change that
// stopped preserving order): if the plan at the cursor doesn't look
// like nominal at all, it's reported as not admitted rather than
// mis-attributed.
func nextAdmitted(admitted []domain.Plan, idx *int, nominal domain.Plan) (domain.Plan, bool) {
	if *idx >= len(admitted) {
		return domain.Plan{}, false
	}
	p := admitted[*idx]
	if !matchesNominal(p, nominal) {
		return domain.Plan{}, false
	}
	*idx++
	return p, true
}

// matchesNominal reports whether p could plausibly be nominal after
// staggering: everything except StartsAt must agree exactly.
func matchesNominal(p, nominal domain.Plan) bool {
	return p.Schedule.AtInstant == nominal.Schedule.AtInstant &&
		p.Duration == nominal.Duration &&
		p.Schedule.Freq == nominal.Schedule.Freq &&
		p.Schedule.Speed == nominal.Schedule.Speed &&
		p.Schedule.Variant.Equal(nominal.Schedule.Variant) &&
		p.Schedule.SimilarConditions(nominal.Schedule)
}
