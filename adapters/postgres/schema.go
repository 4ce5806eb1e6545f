package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds every result table, keyed by job_id. Statements are
// idempotent so bootstrap can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		job_id        TEXT PRIMARY KEY,
		status        TEXT NOT NULL,
		error_message TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS model_details (
		job_id       TEXT NOT NULL REFERENCES jobs(job_id),
		model_type   TEXT NOT NULL,
		coefficients JSONB NOT NULL,
		intercept    DOUBLE PRECISION NOT NULL,
		features     JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS model_metrics (
		job_id          TEXT NOT NULL REFERENCES jobs(job_id),
		baseline_rate   DOUBLE PRECISION NOT NULL,
		top_decile_rate DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feature_importance (
		job_id      TEXT NOT NULL REFERENCES jobs(job_id),
		variable    TEXT NOT NULL,
		importance  DOUBLE PRECISION NOT NULL,
		coefficient DOUBLE PRECISION NOT NULL,
		effect      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scoring_rules (
		job_id   TEXT NOT NULL REFERENCES jobs(job_id),
		position INTEGER NOT NULL,
		variable TEXT NOT NULL,
		rule     TEXT NOT NULL,
		impact   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS response_rates (
		job_id        TEXT NOT NULL REFERENCES jobs(job_id),
		decile        INTEGER NOT NULL,
		count         INTEGER NOT NULL,
		response_rate DOUBLE PRECISION NOT NULL,
		lift          DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scored_records (
		job_id      TEXT NOT NULL REFERENCES jobs(job_id),
		record_id   INTEGER NOT NULL,
		model_score DOUBLE PRECISION NOT NULL,
		rule_score  INTEGER NOT NULL,
		decile      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scored_records_job ON scored_records(job_id)`,
}

// Migrate creates the result tables if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}
	return nil
}
