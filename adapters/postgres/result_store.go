package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"scorecard/domain/core"
	"scorecard/domain/scorecard"
	"scorecard/ports"
)

// Store implements ports.ResultStore on Postgres via sqlx
type Store struct {
	db *sqlx.DB
}

// interface conformance check
var _ ports.ResultStore = (*Store)(nil)

// NewResultStore creates a new Postgres-backed result store
func NewResultStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateJob inserts a job record in the RUNNING state
func (s *Store) CreateJob(ctx context.Context, jobID core.JobID) error {
	query := `INSERT INTO jobs (job_id, status, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())`
	if _, err := s.db.ExecContext(ctx, query, jobID, ports.JobRunning); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// SetJobStatus updates a job's lifecycle state and optional error message
func (s *Store) SetJobStatus(ctx context.Context, jobID core.JobID, status ports.JobStatus, errorMessage string) error {
	query := `UPDATE jobs SET status = $2, error_message = NULLIF($3, ''), updated_at = NOW()
		WHERE job_id = $1`
	if _, err := s.db.ExecContext(ctx, query, jobID, status, errorMessage); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return nil
}

// RecordModel persists coefficients, intercept and feature names as JSON
func (s *Store) RecordModel(ctx context.Context, jobID core.JobID, coefficients []float64, intercept float64, featureNames []string) error {
	coefJSON, err := json.Marshal(map[string][]float64{"values": coefficients})
	if err != nil {
		return fmt.Errorf("failed to marshal coefficients: %w", err)
	}
	namesJSON, err := json.Marshal(map[string][]string{"names": featureNames})
	if err != nil {
		return fmt.Errorf("failed to marshal feature names: %w", err)
	}

	query := `INSERT INTO model_details (job_id, model_type, coefficients, intercept, features)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, query, jobID, "logistic_regression", coefJSON, intercept, namesJSON); err != nil {
		return fmt.Errorf("failed to record model details: %w", err)
	}
	return nil
}

// RecordModelMetrics persists the headline run metrics
func (s *Store) RecordModelMetrics(ctx context.Context, jobID core.JobID, baselineRate, topDecileRate float64) error {
	query := `INSERT INTO model_metrics (job_id, baseline_rate, top_decile_rate)
		VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, jobID, baselineRate, topDecileRate); err != nil {
		return fmt.Errorf("failed to record model metrics: %w", err)
	}
	return nil
}

// RecordFeatureImportance persists the coefficient ranking
func (s *Store) RecordFeatureImportance(ctx context.Context, jobID core.JobID, rows []scorecard.FeatureImportance) error {
	query := `INSERT INTO feature_importance (job_id, variable, importance, coefficient, effect)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range rows {
		if _, err := s.db.ExecContext(ctx, query, jobID, row.Variable, row.Importance, row.Coefficient, row.Effect); err != nil {
			return fmt.Errorf("failed to record feature importance for %s: %w", row.Variable, err)
		}
	}
	return nil
}

// RecordScoringRules persists the scorecard rules in display order
func (s *Store) RecordScoringRules(ctx context.Context, jobID core.JobID, rules scorecard.RuleSet) error {
	query := `INSERT INTO scoring_rules (job_id, position, variable, rule, impact)
		VALUES ($1, $2, $3, $4, $5)`
	for i, rule := range rules {
		if _, err := s.db.ExecContext(ctx, query, jobID, i, rule.Variable, rule.ConditionString(), rule.Adjustment); err != nil {
			return fmt.Errorf("failed to record scoring rule for %s: %w", rule.Variable, err)
		}
	}
	return nil
}

// RecordResponseRates persists the decile table
func (s *Store) RecordResponseRates(ctx context.Context, jobID core.JobID, rows []scorecard.DecileRecord) error {
	query := `INSERT INTO response_rates (job_id, decile, count, response_rate, lift)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range rows {
		if _, err := s.db.ExecContext(ctx, query, jobID, row.Decile, row.Count, row.ResponseRate, row.Lift); err != nil {
			return fmt.Errorf("failed to record response rate for decile %d: %w", row.Decile, err)
		}
	}
	return nil
}

// RecordScoredRecords persists every row's model and rule scores. One
// transaction: the row count is unbounded and partial score tables are
// useless.
func (s *Store) RecordScoredRecords(ctx context.Context, jobID core.JobID, rows []scorecard.ScoredRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin scored-records transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO scored_records (job_id, record_id, model_score, rule_score, decile)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare scored-records insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, jobID, row.RecordID, row.ModelScore, row.RuleScore, row.Decile); err != nil {
			return fmt.Errorf("failed to record scored record %d: %w", row.RecordID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scored records: %w", err)
	}
	return nil
}

// JobStatus reads back a job's state for status polling
func (s *Store) JobStatus(ctx context.Context, jobID core.JobID) (ports.JobStatus, string, error) {
	var row struct {
		Status       ports.JobStatus `db:"status"`
		ErrorMessage *string         `db:"error_message"`
	}
	query := `SELECT status, error_message FROM jobs WHERE job_id = $1`
	if err := s.db.GetContext(ctx, &row, query, jobID); err != nil {
		return "", "", fmt.Errorf("failed to read job status: %w", err)
	}
	msg := ""
	if row.ErrorMessage != nil {
		msg = *row.ErrorMessage
	}
	return row.Status, msg, nil
}
