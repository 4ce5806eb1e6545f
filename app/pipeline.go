package app

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"scorecard/domain/core"
	"scorecard/domain/scorecard"
	"scorecard/domain/table"
	"scorecard/domain/variable"
	"scorecard/internal/prepare"
	"scorecard/internal/scoring"
	"scorecard/internal/train"
	"scorecard/ports"
)

// Pipeline runs one analysis end to end: prepare, validate, train,
// translate to rules, score, decile. Stages run strictly in sequence and
// fail fast; artifacts persist incrementally per stage with no
// cross-stage rollback. Runs share no mutable state, so concurrent
// pipelines on disjoint job IDs are safe.
type Pipeline struct {
	store ports.ResultStore
	log   zerolog.Logger
}

// NewPipeline creates a pipeline writing through the given store. Pass
// ports.NopStore{} to run without a warehouse attached.
func NewPipeline(store ports.ResultStore, log zerolog.Logger) *Pipeline {
	return &Pipeline{store: store, log: log}
}

// Run executes the full pipeline for one job. Every failure path is
// normalized into the pipeline error taxonomy; no panic escapes. The
// returned result mirrors the error on failure so callers always get a
// structured object.
func (p *Pipeline) Run(ctx context.Context, jobID core.JobID, cfg *variable.AnalysisConfig, raw *table.Raw, progress ports.ProgressFunc) (*scorecard.AnalysisResult, error) {
	started := time.Now()
	log := p.log.With().Str("job_id", jobID.String()).Str("source", cfg.SourceIdentifier).Logger()

	if err := cfg.Validate(); err != nil {
		return p.fail(ctx, jobID, log, err)
	}

	progress.Report(0, "Loading data...")
	log.Info().Int("rows", raw.NumRows()).Int("columns", raw.NumCols()).Msg("analysis started")

	progress.Report(10, "Preparing features...")
	prep, err := prepare.Transform(raw, cfg, log)
	if err != nil {
		return p.fail(ctx, jobID, log, err)
	}
	if err := prepare.Validate(prep, log); err != nil {
		return p.fail(ctx, jobID, log, err)
	}
	log.Info().Int("features", prep.Frame.NumCols()-1).Msg("features prepared")

	progress.Report(30, "Training model...")
	model, metrics, err := train.Fit(ctx, prep, log)
	if err != nil {
		return p.fail(ctx, jobID, log, err)
	}

	progress.Report(50, "Analyzing features...")
	importance := rankFeatures(model)

	if err := p.store.CreateJob(ctx, jobID); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("job record", err))
	}
	if err := p.store.RecordModel(ctx, jobID, model.Coefficients, model.Intercept, model.FeatureNames); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("model details", err))
	}
	if err := p.store.RecordFeatureImportance(ctx, jobID, importance); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("feature importance", err))
	}

	rules := scoring.GenerateRules(prep, model.Coefficients, model.FeatureNames, cfg)
	if err := p.store.RecordScoringRules(ctx, jobID, rules); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("scoring rules", err))
	}
	log.Info().Int("rules", len(rules)).Msg("scoring rules generated")

	progress.Report(70, "Calculating scores...")
	modelScores := model.Probabilities(prep.FeatureMatrix())
	ruleScores := rules.Score(prep.Frame)

	responseRates, assignment, err := scoring.Deciles(prep.TargetValues(), modelScores)
	if err != nil {
		return p.fail(ctx, jobID, log, err)
	}
	metrics.TopDecileRate = responseRates[len(responseRates)-1].ResponseRate

	if err := p.store.RecordModelMetrics(ctx, jobID, metrics.BaselineRate, metrics.TopDecileRate); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("model metrics", err))
	}
	if err := p.store.RecordResponseRates(ctx, jobID, responseRates); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("response rates", err))
	}

	scored := make([]scorecard.ScoredRecord, len(modelScores))
	for i := range scored {
		scored[i] = scorecard.ScoredRecord{
			RecordID:   i,
			ModelScore: modelScores[i],
			RuleScore:  ruleScores[i],
			Decile:     assignment[i],
		}
	}
	if err := p.store.RecordScoredRecords(ctx, jobID, scored); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("scored records", err))
	}

	if err := p.store.SetJobStatus(ctx, jobID, ports.JobCompleted, ""); err != nil {
		return p.fail(ctx, jobID, log, core.NewPersistenceError("job status", err))
	}

	progress.Report(100, "Analysis complete!")
	log.Info().Dur("elapsed", time.Since(started)).Float64("baseline_rate", metrics.BaselineRate).Float64("top_decile_rate", metrics.TopDecileRate).Msg("analysis completed")

	return &scorecard.AnalysisResult{
		Success:           true,
		JobID:             jobID,
		Metrics:           metrics,
		FeatureImportance: importance,
		ScoringRules:      rules.Descriptions(),
		Rules:             rules,
		ResponseRates:     responseRates,
		ScoreBands:        scoring.ScoreBands(ruleScores),
	}, nil
}

// fail marks the job FAILED best-effort and normalizes the return shape.
// A status-write failure is logged but never masks the original error.
func (p *Pipeline) fail(ctx context.Context, jobID core.JobID, log zerolog.Logger, err error) (*scorecard.AnalysisResult, error) {
	log.Error().Err(err).Msg("analysis failed")
	if statusErr := p.store.SetJobStatus(ctx, jobID, ports.JobFailed, err.Error()); statusErr != nil {
		log.Warn().Err(statusErr).Msg("could not record FAILED job status")
	}
	return scorecard.Failure(jobID, err), err
}

// rankFeatures orders features by coefficient magnitude, strongest first
func rankFeatures(model *train.Model) []scorecard.FeatureImportance {
	rows := make([]scorecard.FeatureImportance, len(model.FeatureNames))
	for i, name := range model.FeatureNames {
		coef := model.Coefficients[i]
		effect := "negative"
		if coef > 0 {
			effect = "positive"
		}
		importance := coef
		if importance < 0 {
			importance = -importance
		}
		rows[i] = scorecard.FeatureImportance{
			Variable:    name,
			Importance:  importance,
			Coefficient: coef,
			Effect:      effect,
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Importance > rows[b].Importance
	})
	return rows
}
