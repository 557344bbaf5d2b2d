// Package stagger assigns each admitted plan a small, bounded start-time
// offset chosen to maximize its spacing from neighbouring tournament
// starts, preventing thundering-herd load without perceptibly delaying
// the tournament.
package stagger

import (
	"sort"

	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/timeval"
)

// MaxStaggerMS bounds how far a plan's start may be shifted: 40 seconds.
// Chosen so that (i) it stays under 60s, preserving at-least-minute
// spacing from tournaments starting the next minute, and (ii) it
// matches or exceeds the worst-case spread of the prior uniform-random
// [0,60)s jitter it replaces.
const MaxStaggerMS int64 = 40_000

// startSet is an ordered multiset of Instants supporting efficient
// range queries and insertion, backed by a sorted slice with binary
// search — appropriate at the tens-to-low-hundreds sizes a single
// planning pass deals with.
type startSet struct {
	values []int64
}

func newStartSet(existing []domain.Tournament) *startSet {
	s := &startSet{values: make([]int64, 0, len(existing))}
	for _, t := range existing {
		s.values = append(s.values, int64(t.StartsAt))
	}
	sort.Slice(s.values, func(i, j int) bool { return s.values[i] < s.values[j] })
	return s
}

// offsetsWithin returns, in ascending order, v-lo for every stored value
// v in [lo, hi].
func (s *startSet) offsetsWithin(lo, hi int64) []int64 {
	start := sort.Search(len(s.values), func(i int) bool { return s.values[i] >= lo })
	end := sort.Search(len(s.values), func(i int) bool { return s.values[i] > hi })
	if start >= end {
		return nil
	}
	out := make([]int64, end-start)
	for i := start; i < end; i++ {
		out[i-start] = s.values[i] - lo
	}
	return out
}

func (s *startSet) insert(v int64) {
	i := sort.Search(len(s.values), func(i int) bool { return s.values[i] >= v })
	s.values = append(s.values, 0)
	copy(s.values[i+1:], s.values[i:])
	s.values[i] = v
}

// Assign returns admitted in input order with StartsAt replaced by the
// staggered instant. existing seeds the spacing set with every
// tournament's actual start, scheduled or not: unscheduled tournaments
// never participate in conflict but still occupy server load.
//
// The procedure is greedy and stable: the first plan sees the fewest
// neighbours; later plans see the stagger choices of earlier ones,
// because each chosen instant is inserted back into the set before the
// next plan is processed.
func Assign(existing []domain.Tournament, admitted []domain.Plan) []domain.Plan {
	starts := newStartSet(existing)
	out := make([]domain.Plan, len(admitted))
	for i, p := range admitted {
		t0 := int64(p.StartsAt)
		offsets := starts.offsetsWithin(t0, t0+MaxStaggerMS)
		delta := FindMinimalGoodSlot(0, MaxStaggerMS, offsets)

		staggered := p
		staggered.StartsAt = timeval.Instant(t0 + delta)
		out[i] = staggered

		starts.insert(t0 + delta)
	}
	return out
}

// FindMinimalGoodSlot returns the lowest value in [lo, hi] that lies at
// the centre of the maximum-length gap to the nearest element of sorted
// (which must already be ascending and within [lo, hi]).
//
// Empty sorted returns lo. A virtual left gap at lo is seeded with
// length 2*(first-lo); its left edge lo-(first-lo) recovers lo once
// maxGapLen/2 is added back at the end, which is how every candidate —
// virtual or interior — is tracked: as a left edge plus a length,
// rather than as a centre directly. Interior gaps between consecutive
// elements have length next-prev and edge prev, recovering centre
// prev+(next-prev)/2 (integer division truncates toward zero). The
// right gap at hi only wins on a strict improvement (2*(hi-last) >
// maxGapLen), preserving a "lowest good slot" bias.
//
// Tie-breaking: among interior gaps of equal width, the first
// (leftmost) one wins, since later candidates must strictly beat the
// incumbent once a real gap has taken the lead. The one exception is
// the virtual left gap itself: it is a placeholder, not a real
// candidate, so the first real gap that matches its length displaces
// it (see the worked example below) — only after some real gap has
// taken the lead does the usual strict rule apply.
//
// Example: FindMinimalGoodSlot(0, 40000, [10000, 30000]) = 20000. The
// virtual left gap and the single interior gap are both length 20000;
// the interior gap, being real, wins the tie and its centre (20000) is
// returned.
func FindMinimalGoodSlot(lo, hi int64, sorted []int64) int64 {
	if len(sorted) == 0 {
		return lo
	}

	first := sorted[0]
	maxGapLen := 2 * (first - lo)
	maxGapEdge := lo - (first - lo)
	leaderIsVirtual := true

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		gapLen := next - prev
		if gapLen > maxGapLen || (leaderIsVirtual && gapLen == maxGapLen) {
			maxGapLen = gapLen
			maxGapEdge = prev
			leaderIsVirtual = false
		}
	}

	last := sorted[len(sorted)-1]
	if rightGapLen := 2 * (hi - last); rightGapLen > maxGapLen {
		return hi
	}

	return maxGapEdge + maxGapLen/2
}
