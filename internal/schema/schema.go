// Package schema provisions the relational store consumed by the engine and
// aggregator. It is one-shot setup executed by the CLI init command, not a
// migration system.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

//go:embed sample_data.sql
var sampleDataSQL string

// Provision creates all tables, constraints and indexes.
func Provision(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("provision schema: %w", err)
	}
	return nil
}

// Seed loads the bundled sample dataset. Seat counters in the sample data
// are kept consistent with the enrollment rows by construction.
func Seed(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, sampleDataSQL); err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	return nil
}
