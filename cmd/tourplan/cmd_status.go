package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store contents and the last planning run's admitted/rejected split",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "JSON output")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tournaments, err := a.store.ListTournaments()
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	plans, err := a.store.ListPlans()
	if err != nil {
		return fmt.Errorf("list plans: %w", err)
	}

	if statusJSON {
		printJSON(map[string]interface{}{
			"tournaments": tournaments,
			"plans":       plans,
		})
		return nil
	}

	fmt.Printf("tournaments: %d\n", len(tournaments))
	for _, t := range tournaments {
		kind := "scheduled"
		if t.ScheduleJSON == nil {
			kind = "unscheduled"
		}
		fmt.Printf("  %-36s %-11s starts_at=%s duration=%s\n",
			t.ID, kind, formatInstant(t.StartsAtMs), humanizeDuration(t.DurationMs))
	}

	admitted, rejected, planned := 0, 0, 0
	fmt.Printf("\nplans: %d\n", len(plans))
	for _, p := range plans {
		switch {
		case p.Admitted == nil:
			fmt.Printf("  %-36s not yet planned\n", p.ID)
		case *p.Admitted:
			admitted++
			planned++
			stagger := int64(0)
			if p.StaggerMs != nil {
				stagger = *p.StaggerMs
			}
			fmt.Printf("  %-36s admitted  starts_at=%s stagger=%s\n",
				p.ID, formatInstant(p.StartsAtMs+stagger), humanizeDuration(stagger))
		default:
			rejected++
			planned++
			fmt.Printf("  %-36s rejected\n", p.ID)
		}
	}
	if planned > 0 {
		fmt.Printf("\nlast run: %d admitted, %d rejected\n", admitted, rejected)
	}
	return nil
}

func formatInstant(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// humanizeDuration renders a millisecond count the way humanize.RelTime
// renders an elapsed span, without the "ago"/"from now" suffix a bare
// time-difference call would add.
func humanizeDuration(ms int64) string {
	epoch := time.Unix(0, 0)
	return humanize.RelTime(epoch, epoch.Add(time.Duration(ms)*time.Millisecond), "", "")
}
