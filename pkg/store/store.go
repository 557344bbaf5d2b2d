// Package store manages all SQLite persistence for tourplan.
//
// Tournaments and plans are rows in a WAL-mode database rather than
// in-memory state: a seed run writes candidates and committed
// tournaments once, a plan run reads them back, computes admission
// and stagger, and writes the results onto the same rows. The database
// is the only thing that outlives a single CLI invocation.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/model"
	"github.com/chesscollective/tourplan/pkg/timeval"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store manages all SQLite operations with WAL mode for concurrent access.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and applies every pending
// goose migration under migrations/.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// retryOnContention wraps retryOp from retry.go with the default config.
// All store write operations should use this to handle transient SQLite
// errors (BUSY, LOCKED, IOERR_SHORT_READ) under concurrent access.
func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

// ---------------------------------------------------------------------------
// Tournaments
// ---------------------------------------------------------------------------

// InsertTournament persists a committed tournament.
func (s *Store) InsertTournament(t *model.TournamentRecord) error {
	return retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO tournaments (id, starts_at_ms, duration_ms, schedule_json, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.StartsAtMs, t.DurationMs, t.ScheduleJSON, t.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
}

// ListTournaments returns every committed tournament, ordered by starts_at_ms.
func (s *Store) ListTournaments() ([]model.TournamentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, starts_at_ms, duration_ms, schedule_json, created_at
		 FROM tournaments ORDER BY starts_at_ms ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TournamentRecord
	for rows.Next() {
		var t model.TournamentRecord
		var createdStr string
		if err := rows.Scan(&t.ID, &t.StartsAtMs, &t.DurationMs, &t.ScheduleJSON, &createdStr); err != nil {
			return nil, err
		}
		var parseErr error
		t.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse created_at for tournament %s: %w", t.ID, parseErr)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Plans
// ---------------------------------------------------------------------------

// InsertPlan persists a candidate plan with Admitted/StaggerMs unset.
func (s *Store) InsertPlan(p *model.PlanRecord) error {
	return retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO plans (id, schedule_json, starts_at_ms, duration_ms, admitted, stagger_ms, created_at)
			 VALUES (?, ?, ?, ?, NULL, NULL, ?)`,
			p.ID, p.ScheduleJSON, p.StartsAtMs, p.DurationMs, p.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
}

// ListPlans returns every candidate plan, ordered by starts_at_ms and then
// by id. This is not necessarily the order candidates were seeded in.
func (s *Store) ListPlans() ([]model.PlanRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, schedule_json, starts_at_ms, duration_ms, admitted, stagger_ms, created_at
		 FROM plans ORDER BY starts_at_ms ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlanRecord
	for rows.Next() {
		var p model.PlanRecord
		var createdStr string
		var admitted sql.NullBool
		var staggerMs sql.NullInt64
		if err := rows.Scan(&p.ID, &p.ScheduleJSON, &p.StartsAtMs, &p.DurationMs,
			&admitted, &staggerMs, &createdStr); err != nil {
			return nil, err
		}
		if admitted.Valid {
			v := admitted.Bool
			p.Admitted = &v
		}
		if staggerMs.Valid {
			v := staggerMs.Int64
			p.StaggerMs = &v
		}
		var parseErr error
		p.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse created_at for plan %s: %w", p.ID, parseErr)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePlanResult records the outcome of a planning run for a single plan.
func (s *Store) UpdatePlanResult(id string, admitted bool, staggerMs *int64) error {
	return retryOnContention(func() error {
		_, err := s.db.Exec(
			`UPDATE plans SET admitted = ?, stagger_ms = ? WHERE id = ?`,
			admitted, staggerMs, id,
		)
		return err
	})
}

// ClearPlanResults resets Admitted/StaggerMs to unset for every plan, so a
// fresh plan run starts from nominal starts again.
func (s *Store) ClearPlanResults() error {
	return retryOnContention(func() error {
		_, err := s.db.Exec(`UPDATE plans SET admitted = NULL, stagger_ms = NULL`)
		return err
	})
}

// ---------------------------------------------------------------------------
// Domain conversions
// ---------------------------------------------------------------------------

// LoadTournaments reads every committed tournament and decodes it into a
// domain.Tournament. A row with a nil ScheduleJSON becomes a Tournament
// with a nil Schedule, matching domain.Tournament's "occupies a slot but
// not subject to conflict pruning" case.
func (s *Store) LoadTournaments() ([]domain.Tournament, error) {
	records, err := s.ListTournaments()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tournament, 0, len(records))
	for _, r := range records {
		t := domain.Tournament{
			StartsAt: timeval.Instant(r.StartsAtMs),
			Duration: timeval.Duration(r.DurationMs),
		}
		if r.ScheduleJSON != nil {
			sched, err := decodeSchedule([]byte(*r.ScheduleJSON))
			if err != nil {
				return nil, fmt.Errorf("tournament %s: %w", r.ID, err)
			}
			t.Schedule = &sched
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadPlans reads every candidate plan and decodes it into a domain.Plan,
// in the seeded order the pruner and stagger assigner require.
func (s *Store) LoadPlans() ([]model.PlanRecord, []domain.Plan, error) {
	records, err := s.ListPlans()
	if err != nil {
		return nil, nil, err
	}
	out := make([]domain.Plan, 0, len(records))
	for _, r := range records {
		sched, err := decodeSchedule([]byte(r.ScheduleJSON))
		if err != nil {
			return nil, nil, fmt.Errorf("plan %s: %w", r.ID, err)
		}
		out = append(out, domain.Plan{
			Schedule: sched,
			StartsAt: timeval.Instant(r.StartsAtMs),
			Duration: timeval.Duration(r.DurationMs),
		})
	}
	return records, out, nil
}
