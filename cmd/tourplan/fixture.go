package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chesscollective/tourplan/pkg/store"
)

// fixture is the JSON shape accepted by `tourplan seed`. Each schedule
// object uses the same JSON shape the store persists in its
// schedule_json columns.
type fixture struct {
	Tournaments []fixtureTournament `json:"tournaments"`
	Candidates  []fixtureCandidate  `json:"candidates"`
}

type fixtureTournament struct {
	ID         string          `json:"id"`
	StartsAtMs int64           `json:"starts_at_ms"`
	DurationMs int64           `json:"duration_ms"`
	Schedule   json.RawMessage `json:"schedule,omitempty"`
}

type fixtureCandidate struct {
	ID         string          `json:"id"`
	StartsAtMs int64           `json:"starts_at_ms"`
	DurationMs int64           `json:"duration_ms"`
	Schedule   json.RawMessage `json:"schedule"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %q: %w", path, err)
	}
	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %q: %w", path, err)
	}
	for _, c := range f.Candidates {
		if _, err := store.DecodeSchedule(c.Schedule); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", c.ID, err)
		}
	}
	for _, t := range f.Tournaments {
		if t.Schedule == nil {
			continue
		}
		if _, err := store.DecodeSchedule(t.Schedule); err != nil {
			return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
		}
	}
	return &f, nil
}
