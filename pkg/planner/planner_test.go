package planner

import (
	"errors"
	"testing"

	"github.com/chesscollective/tourplan/pkg/conflict"
	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/pruner"
	"github.com/chesscollective/tourplan/pkg/stagger"
	"github.com/chesscollective/tourplan/pkg/timeval"
)

func mins(m int64) timeval.Instant { return timeval.Instant(m * 60_000) }

func plan(freq domain.Freq, speed domain.Speed, v domain.Variant, startMin, durMin int64) domain.Plan {
	start := mins(startMin)
	return domain.Plan{
		Schedule: domain.Schedule{Freq: freq, Speed: speed, Variant: v, AtInstant: start},
		StartsAt: start,
		Duration: timeval.Duration(durMin * 60_000),
	}
}

func TestPlan_EmptyCandidates(t *testing.T) {
	if got := Plan(nil, nil); len(got) != 0 {
		t.Fatalf("got %d, want 0", len(got))
	}
}

func TestPlan_NoExistingEqualsSelfPruning(t *testing.T) {
	candidates := []domain.Plan{
		plan(domain.Daily, domain.Blitz, domain.Standard, 12*60, 60),
		plan(domain.Daily, domain.Blitz, domain.Standard, 22*60, 60), // conflicts with first
	}
	got := Plan(nil, candidates)
	if len(got) != 1 {
		t.Fatalf("got %d, want 1", len(got))
	}
}

func TestPlan_IsSubsetInOriginalOrder(t *testing.T) {
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Bullet, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Classical, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Rapid, domain.Standard, 0, 10),
	}
	got := Plan(nil, candidates)
	if len(got) > len(candidates) {
		t.Fatal("output must be a subset of the input")
	}
	// relative order of nominal starts must be preserved (stagger only
	// moves starts forward within bounds, it never reorders plans).
	for i := 1; i < len(got); i++ {
		if got[i].Schedule.Speed != candidates[i].Schedule.Speed {
			t.Fatalf("plan %d: order not preserved by speed identity", i)
		}
	}
}

func TestPlan_AdmittedPlansDoNotConflictAtNominalTimes(t *testing.T) {
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Bullet, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Classical, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Rapid, domain.Standard, 0, 10),
	}
	admitted := pruner.Prune(nil, candidates)
	for i := range admitted {
		for j := range admitted {
			if i == j {
				continue
			}
			a := domain.FromPlan(admitted[i])
			b := domain.FromPlan(admitted[j])
			if conflict.Conflicts(a, b) {
				t.Fatalf("admitted plans %d and %d conflict at nominal times", i, j)
			}
		}
	}
}

func TestPlan_StaggerStaysWithinBound(t *testing.T) {
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Bullet, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Classical, domain.Standard, 0, 10),
	}
	got := Plan(nil, candidates)
	for i, p := range got {
		nominal := int64(candidates[i].StartsAt)
		delta := int64(p.StartsAt) - nominal
		if delta < 0 || delta > stagger.MaxStaggerMS {
			t.Fatalf("plan %d: stagger %d out of [0, %d]", i, delta, stagger.MaxStaggerMS)
		}
	}
}

func TestPlan_DoesNotReplanCommittedTournaments(t *testing.T) {
	existingSched := domain.Schedule{Freq: domain.Daily, Speed: domain.Blitz, Variant: domain.Standard, AtInstant: mins(12 * 60)}
	existing := []domain.Tournament{
		{Schedule: &existingSched, StartsAt: mins(12*60 + 1), Duration: timeval.Duration(60 * 60_000)}, // already staggered by 1 min
	}
	candidates := []domain.Plan{
		plan(domain.Daily, domain.Blitz, domain.Standard, 12*60+5, 60), // close to the *nominal* start
	}
	got := Plan(existing, candidates)
	if len(got) != 0 {
		t.Fatalf("got %d, want 0: candidate should conflict against the existing tournament's nominal start", len(got))
	}
}

func TestPlan_IsDeterministic(t *testing.T) {
	existingSched := domain.Schedule{Freq: domain.Weekly, Speed: domain.Rapid, Variant: domain.Standard, AtInstant: mins(0)}
	existing := []domain.Tournament{{Schedule: &existingSched, StartsAt: mins(0), Duration: timeval.Duration(3600_000)}}
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Bullet, domain.Standard, 0, 10),
		plan(domain.Hourly, domain.Classical, domain.Standard, 0, 10),
	}
	a := Plan(existing, candidates)
	b := Plan(existing, candidates)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic output length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].StartsAt != b[i].StartsAt {
			t.Fatalf("non-deterministic stagger at %d: %d vs %d", i, a[i].StartsAt, b[i].StartsAt)
		}
	}
}

func TestPlanStrict_ReturnsUsurpationError(t *testing.T) {
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Blitz, domain.Standard, 12*60, 60),
		plan(domain.Weekly, domain.Blitz, domain.Standard, 12*60+5, 60),
	}
	_, err := PlanStrict(nil, candidates)
	var usurp *pruner.UsurpationError
	if !errors.As(err, &usurp) {
		t.Fatalf("expected usurpation error, got %v", err)
	}
}

func TestPlanStrict_NoUsurpationMatchesPlan(t *testing.T) {
	existingSched := domain.Schedule{Freq: domain.Weekly, Speed: domain.Rapid, Variant: domain.Standard, AtInstant: mins(0)}
	existing := []domain.Tournament{{Schedule: &existingSched, StartsAt: mins(0), Duration: timeval.Duration(3600_000)}}
	candidates := []domain.Plan{
		plan(domain.Hourly, domain.Bullet, domain.Standard, 0, 10),
	}
	got, err := PlanStrict(existing, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Plan(existing, candidates)
	if len(got) != len(want) {
		t.Fatalf("got %d admitted, want %d", len(got), len(want))
	}
}
