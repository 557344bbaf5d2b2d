// iface.go defines the StoreInterface for dependency injection and testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// the store (the cmd layer, primarily) can accept StoreInterface instead
// of *Store, enabling mock injection in tests.
package store

import (
	"github.com/chesscollective/tourplan/pkg/domain"
	"github.com/chesscollective/tourplan/pkg/model"
)

// StoreInterface defines the full set of store operations.
// The concrete *Store type implements this interface.
type StoreInterface interface {
	// Close closes the database connection.
	Close() error

	// --- Tournaments ---

	// InsertTournament persists a committed tournament.
	InsertTournament(t *model.TournamentRecord) error

	// ListTournaments returns every committed tournament, ordered by
	// starts_at_ms.
	ListTournaments() ([]model.TournamentRecord, error)

	// --- Plans ---

	// InsertPlan persists a candidate plan with Admitted/StaggerMs unset.
	InsertPlan(p *model.PlanRecord) error

	// ListPlans returns every candidate plan, ordered by starts_at_ms.
	ListPlans() ([]model.PlanRecord, error)

	// UpdatePlanResult records the outcome of a planning run for a
	// single plan.
	UpdatePlanResult(id string, admitted bool, staggerMs *int64) error

	// ClearPlanResults resets Admitted/StaggerMs to unset for every plan.
	ClearPlanResults() error

	// --- Domain conversions ---

	// LoadTournaments decodes every committed tournament row into a
	// domain.Tournament.
	LoadTournaments() ([]domain.Tournament, error)

	// LoadPlans decodes every candidate plan row into a domain.Plan,
	// alongside the raw records needed to write results back.
	LoadPlans() ([]model.PlanRecord, []domain.Plan, error)
}

// Compile-time check that *Store implements StoreInterface.
var _ StoreInterface = (*Store)(nil)
