package ports

import (
	"context"

	"scorecard/domain/core"
	"scorecard/domain/scorecard"
)

// JobStatus is the persisted lifecycle state of one analysis run
type JobStatus string

const (
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// ResultStore is the narrow write interface the pipeline persists through.
// Writes commit incrementally per stage; there is no cross-stage rollback.
type ResultStore interface {
	CreateJob(ctx context.Context, jobID core.JobID) error
	SetJobStatus(ctx context.Context, jobID core.JobID, status JobStatus, errorMessage string) error

	RecordModel(ctx context.Context, jobID core.JobID, coefficients []float64, intercept float64, featureNames []string) error
	RecordModelMetrics(ctx context.Context, jobID core.JobID, baselineRate, topDecileRate float64) error
	RecordFeatureImportance(ctx context.Context, jobID core.JobID, rows []scorecard.FeatureImportance) error
	RecordScoringRules(ctx context.Context, jobID core.JobID, rules scorecard.RuleSet) error
	RecordResponseRates(ctx context.Context, jobID core.JobID, rows []scorecard.DecileRecord) error
	RecordScoredRecords(ctx context.Context, jobID core.JobID, rows []scorecard.ScoredRecord) error
}

// NopStore discards every write. Used when a run has no warehouse attached.
type NopStore struct{}

func (NopStore) CreateJob(context.Context, core.JobID) error { return nil }
func (NopStore) SetJobStatus(context.Context, core.JobID, JobStatus, string) error {
	return nil
}
func (NopStore) RecordModel(context.Context, core.JobID, []float64, float64, []string) error {
	return nil
}
func (NopStore) RecordModelMetrics(context.Context, core.JobID, float64, float64) error {
	return nil
}
func (NopStore) RecordFeatureImportance(context.Context, core.JobID, []scorecard.FeatureImportance) error {
	return nil
}
func (NopStore) RecordScoringRules(context.Context, core.JobID, scorecard.RuleSet) error {
	return nil
}
func (NopStore) RecordResponseRates(context.Context, core.JobID, []scorecard.DecileRecord) error {
	return nil
}
func (NopStore) RecordScoredRecords(context.Context, core.JobID, []scorecard.ScoredRecord) error {
	return nil
}
