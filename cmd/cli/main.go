package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"scorecard/adapters/postgres"
	"scorecard/adapters/tabular"
	"scorecard/app"
	"scorecard/domain/core"
	"scorecard/domain/variable"
	"scorecard/internal/report"
	"scorecard/internal/testkit"
	"scorecard/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "scorecard-cli",
		Short: "Build explainable point-scoring systems from tabular data",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSynthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath  string
		dataPath    string
		databaseURL string
		htmlPath    string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis pipeline on a CSV or Excel file",
		Long: `Run the full analysis pipeline: feature preparation, validation,
L1 logistic regression, scorecard generation and decile analysis.

Example: scorecard-cli analyze --config campaign.yaml --data campaign.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)

			cfg, err := loadAnalysisConfig(configPath)
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.SourceIdentifier = dataPath
			}

			raw, err := tabular.NewFileReader().Read(cmd.Context(), cfg.SourceIdentifier)
			if err != nil {
				return err
			}

			store, cleanup, err := openStore(cmd.Context(), databaseURL)
			if err != nil {
				return err
			}
			defer cleanup()

			progress := func(percent int, message string) {
				fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, message)
			}

			pipeline := app.NewPipeline(store, log)
			result, err := pipeline.Run(cmd.Context(), core.NewJobID(), cfg, raw, progress)
			if err != nil {
				return err
			}

			fmt.Println(report.Markdown(result))
			if htmlPath != "" {
				if err := os.WriteFile(htmlPath, report.HTML(result), 0o644); err != nil {
					return fmt.Errorf("failed to write HTML report: %w", err)
				}
				fmt.Fprintf(os.Stderr, "HTML report written to %s\n", htmlPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "analysis config YAML file (required)")
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file (.csv or .xlsx), overrides the config's source identifier")
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres URL for persisting results (optional)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "also write an HTML report to this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newSynthCmd() *cobra.Command {
	var (
		rows int
		out  string
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic campaign-response dataset for experimentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			genCfg := testkit.DefaultCampaignConfig()
			genCfg.RowCount = rows
			genCfg.Seed = seed
			raw := testkit.NewCampaignDataGenerator(genCfg).Generate()

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			w := csv.NewWriter(f)
			names := raw.Names()
			if err := w.Write(names); err != nil {
				return err
			}
			cols := make([][]string, len(names))
			for i, n := range names {
				cols[i], _ = raw.Column(n)
			}
			record := make([]string, len(names))
			for r := 0; r < raw.NumRows(); r++ {
				for c := range names {
					record[c] = cols[c][r]
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %d rows to %s\n", raw.NumRows(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 500, "number of rows to generate")
	cmd.Flags().StringVar(&out, "out", "campaign.csv", "output CSV path")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

func loadAnalysisConfig(path string) (*variable.AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg variable.AnalysisConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

func openStore(ctx context.Context, databaseURL string) (ports.ResultStore, func(), error) {
	if databaseURL == "" {
		return ports.NopStore{}, func() {}, nil
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewResultStore(db), func() { db.Close() }, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
