// Package timeval defines the millisecond-resolution time primitives the
// planner operates on: Instant, Duration, and the half-open TimeInterval
// they compose into.
package timeval

// Instant is an absolute point in time, millisecond resolution, totally
// ordered. It is a plain int64 count of milliseconds since the Unix
// epoch rather than time.Time so that stagger arithmetic stays exact
// 64-bit integer math with no monotonic-clock or timezone concerns.
type Instant int64

// Sub returns the signed millisecond distance a - b.
func (a Instant) Sub(b Instant) int64 { return int64(a) - int64(b) }

// Add returns a shifted by d.
func (a Instant) Add(d Duration) Instant { return a + Instant(d) }

// Before reports whether a is strictly earlier than b.
func (a Instant) Before(b Instant) bool { return a < b }

// Duration is a non-negative length of time in milliseconds.
type Duration int64

// TimeInterval is the half-open interval [Start, Start+Duration).
type TimeInterval struct {
	Start    Instant
	Duration Duration
}

// End returns the exclusive end of the interval.
func (iv TimeInterval) End() Instant { return iv.Start.Add(iv.Duration) }

// Overlaps reports whether two intervals share any instant.
// a.Start < b.End && b.Start < a.End.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start < other.End() && other.Start < iv.End()
}
