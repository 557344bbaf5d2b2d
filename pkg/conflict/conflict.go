// Package conflict implements the scheduling clash predicate the pruner
// uses to decide whether two scheduled intervals may coexist.
//
// The predicate is pure and symmetric: it never mutates its arguments
// and conflicts(a, b) == conflicts(b, a) for any a, b.
package conflict

import "github.com/chesscollective/tourplan/pkg/domain"

// scheduleDailyOverlapMins is the window, in minutes, within which two
// same-speed Daily-or-better tournaments are considered to clash. 690
// minutes (11.5 hours) is chosen so that opposite-hour dailies (e.g.
// 00:00 vs 11:00) still cancel only one of the pair; placing a
// higher-importance tourney "nearly opposite" a daily and thereby
// cancelling two dailies is a known, intentionally unfixed asymmetry.
const scheduleDailyOverlapMins = 690

const msPerMinute = 60_000

// Conflicts reports whether a and b clash and therefore cannot both be
// scheduled. The relation is symmetric.
//
// Two scheduled intervals conflict only if they share the same Variant,
// and then either:
//
//  1. both are Daily-or-better and SameSpeed, in which case they clash
//     whenever their intervals lie within scheduleDailyOverlapMins of
//     each other (the "daily window" rule, deliberately one-sided in
//     importance: it cancels the second of two close same-speed dailies
//     regardless of which one is more important) — or
//  2. otherwise, whenever the variant is exotic, or either side has a
//     rating cap, or the two are SimilarSpeed, AND the two have
//     SimilarConditions, AND their intervals actually overlap.
//
// Two standard-variant tournaments at different speeds with different
// entry conditions do not load the same player population and are
// permitted to overlap freely.
func Conflicts(a, b domain.ScheduledInterval) bool {
	if !a.Schedule.Variant.Equal(b.Schedule.Variant) {
		return false
	}

	if a.Schedule.Freq.IsDailyOrBetter() && b.Schedule.Freq.IsDailyOrBetter() && a.Schedule.SameSpeed(b.Schedule) {
		return withinDailyWindow(a, b)
	}

	samePopulation := b.Schedule.Variant.Exotic() || a.Schedule.HasMaxRating() || b.Schedule.HasMaxRating() || a.Schedule.SimilarSpeed(b.Schedule)
	if !samePopulation {
		return false
	}
	if !a.Schedule.SimilarConditions(b.Schedule) {
		return false
	}
	return a.Interval().Overlaps(b.Interval())
}

// withinDailyWindow reports whether a and b lie within the daily
// overlap window of each other:
//
//	b.start - 690min < a.end  &&  a.start - 690min < b.end
func withinDailyWindow(a, b domain.ScheduledInterval) bool {
	window := int64(scheduleDailyOverlapMins) * msPerMinute
	bStartMinusWindow := int64(b.StartsAt) - window
	aEnd := int64(a.EndsAt())
	aStartMinusWindow := int64(a.StartsAt) - window
	bEnd := int64(b.EndsAt())
	return bStartMinusWindow < aEnd && aStartMinusWindow < bEnd
}
