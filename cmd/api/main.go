package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"scorecard/adapters/postgres"
	"scorecard/adapters/tabular"
	"scorecard/app"
	"scorecard/domain/core"
	"scorecard/domain/scorecard"
	"scorecard/domain/variable"
	"scorecard/internal/config"
	"scorecard/internal/report"
	"scorecard/ports"
)

// analyzeRequest is the submission payload: a server-readable data file
// plus the fully formed analysis configuration.
type analyzeRequest struct {
	DataPath string                  `json:"data_path"`
	Config   variable.AnalysisConfig `json:"config"`
}

// jobEntry tracks one run in memory for status polling
type jobEntry struct {
	Status   ports.JobStatus           `json:"status"`
	Error    string                    `json:"error,omitempty"`
	Progress int                       `json:"progress"`
	Message  string                    `json:"message,omitempty"`
	Result   *scorecard.AnalysisResult `json:"result,omitempty"`
}

// server hosts the analysis API. Each run executes in its own goroutine
// on its own prepared dataset; the registry is the only shared state.
type server struct {
	pipeline *app.Pipeline
	reader   ports.DataReader
	log      zerolog.Logger

	mu   sync.RWMutex
	jobs map[core.JobID]*jobEntry
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	store := ports.ResultStore(ports.NopStore{})
	if cfg.HasDatabase() {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
		store = postgres.NewResultStore(db)
		log.Info().Msg("results will persist to postgres")
	} else {
		log.Info().Msg("no DATABASE_URL set, results held in memory only")
	}

	s := &server{
		pipeline: app.NewPipeline(store, log),
		reader:   tabular.NewFileReader(),
		log:      log,
		jobs:     make(map[core.JobID]*jobEntry),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))

	r.Route("/api/analyses", func(r chi.Router) {
		r.Post("/", s.handleSubmit)
		r.Get("/{jobID}", s.handleStatus)
		r.Get("/{jobID}/report", s.handleReport)
	})

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("scorecard API listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// handleSubmit validates the request, registers a job and launches the
// pipeline in the background. The response carries the job ID to poll.
func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.DataPath != "" {
		req.Config.SourceIdentifier = req.DataPath
	}
	if err := req.Config.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := core.NewJobID()
	s.mu.Lock()
	s.jobs[jobID] = &jobEntry{Status: ports.JobRunning}
	s.mu.Unlock()

	go s.run(jobID, &req.Config)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"job_id": jobID.String()})
}

// run executes one pipeline in the background and records its outcome
func (s *server) run(jobID core.JobID, cfg *variable.AnalysisConfig) {
	ctx := context.Background()

	progress := func(percent int, message string) {
		s.mu.Lock()
		if entry, ok := s.jobs[jobID]; ok {
			entry.Progress = percent
			entry.Message = message
		}
		s.mu.Unlock()
	}

	raw, err := s.reader.Read(ctx, cfg.SourceIdentifier)
	if err != nil {
		s.finish(jobID, scorecard.Failure(jobID, err), err)
		return
	}

	result, err := s.pipeline.Run(ctx, jobID, cfg, raw, progress)
	s.finish(jobID, result, err)
}

func (s *server) finish(jobID core.JobID, result *scorecard.AnalysisResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return
	}
	entry.Result = result
	if err != nil {
		entry.Status = ports.JobFailed
		entry.Error = err.Error()
		return
	}
	entry.Status = ports.JobCompleted
	entry.Progress = 100
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(chi.URLParam(r, "jobID"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(chi.URLParam(r, "jobID"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if entry.Status == ports.JobRunning || entry.Result == nil {
		writeError(w, http.StatusConflict, "analysis still running")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.HTML(entry.Result))
}

// lookup snapshots a job entry so handlers never hold the lock while writing
func (s *server) lookup(id string) (jobEntry, bool) {
	jobID, err := core.ParseJobID(id)
	if err != nil {
		return jobEntry{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return jobEntry{}, false
	}
	return *entry, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": message})
}
