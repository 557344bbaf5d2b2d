// Package model defines the persisted record shapes for tourplan: the
// SQLite row representations of committed tournaments and candidate
// plans that pkg/store reads and writes. The planner core packages
// (pkg/domain, pkg/planner, ...) never see these directly — store.go
// converts between them and domain.Tournament/domain.Plan at the
// boundary.
package model

import "time"

// TournamentRecord is the persisted form of a committed tournament.
// ScheduleJSON is nil when the tournament has no originating schedule:
// it still occupies a row, and therefore still influences stagger
// spacing, but is excluded from conflict pruning, mirroring
// domain.Tournament.Schedule being nil.
type TournamentRecord struct {
	ID           string    `json:"id"`
	StartsAtMs   int64     `json:"starts_at_ms"`
	DurationMs   int64     `json:"duration_ms"`
	ScheduleJSON *string   `json:"schedule_json,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlanRecord is the persisted form of a candidate plan. Admitted and
// StaggerMs are nil until a planning run has processed the row;
// StaggerMs is the delta the stagger assigner applied, not the
// resulting absolute instant.
type PlanRecord struct {
	ID           string    `json:"id"`
	ScheduleJSON string    `json:"schedule_json"`
	StartsAtMs   int64     `json:"starts_at_ms"`
	DurationMs   int64     `json:"duration_ms"`
	Admitted     *bool     `json:"admitted,omitempty"`
	StaggerMs    *int64    `json:"stagger_ms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
