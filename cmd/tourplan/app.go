package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/chesscollective/tourplan/pkg/config"
	"github.com/chesscollective/tourplan/pkg/store"
)

// app holds shared state for all CLI subcommands.
type app struct {
	store  *store.Store
	logger zerolog.Logger
}

// newApp loads configuration and opens the database.
func newApp() (*app, error) {
	cfg, logger := config.Load()

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", cfg.DBPath, err)
	}
	return &app{store: s, logger: logger}, nil
}

// Close releases the database connection.
func (a *app) Close() error { return a.store.Close() }

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
