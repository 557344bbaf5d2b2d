package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chesscollective/tourplan/pkg/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.json>",
	Short: "Load existing tournaments and candidate plans from a JSON fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := loadFixture(args[0])
	if err != nil {
		return err
	}

	for _, t := range f.Tournaments {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		rec := &model.TournamentRecord{
			ID:         id,
			StartsAtMs: t.StartsAtMs,
			DurationMs: t.DurationMs,
			CreatedAt:  time.Now().UTC(),
		}
		if t.Schedule != nil {
			raw := string(t.Schedule)
			rec.ScheduleJSON = &raw
		}
		if err := a.store.InsertTournament(rec); err != nil {
			return fmt.Errorf("insert tournament %s: %w", id, err)
		}
	}

	for _, c := range f.Candidates {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		rec := &model.PlanRecord{
			ID:           id,
			ScheduleJSON: string(c.Schedule),
			StartsAtMs:   c.StartsAtMs,
			DurationMs:   c.DurationMs,
			CreatedAt:    time.Now().UTC(),
		}
		if err := a.store.InsertPlan(rec); err != nil {
			return fmt.Errorf("insert candidate %s: %w", id, err)
		}
	}

	a.logger.Info().
		Int("tournaments", len(f.Tournaments)).
		Int("candidates", len(f.Candidates)).
		Msg("fixture seeded")
	return nil
}
