package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-ingest/internal/app"
	"github.com/riskibarqy/match-ingest/internal/config"
	"github.com/riskibarqy/match-ingest/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-ingest/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-ingest/internal/platform/logging"
	"github.com/riskibarqy/match-ingest/internal/usecase"
)

type cliState struct {
	envFile string
	dryRun  bool

	cfg    config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:          "ingest",
		Short:        "Ingest match event feeds and rebuild season rollups",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&state.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().BoolVar(&state.dryRun, "dry-run", false, "run against an in-memory store seeded with demo clubs instead of postgres")

	root.AddCommand(newMatchCmd(state), newBatchCmd(state), newRollupCmd(state))
	return root
}

func (s *cliState) load() error {
	if s.envFile != "" {
		if err := godotenv.Load(s.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", s.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName, "command", "ingest")
	logging.SetDefault(s.logger)
	return nil
}

// service builds the pipeline over the configured backend. The returned func releases it.
func (s *cliState) service(ctx context.Context) (*usecase.IngestionService, func(), error) {
	if s.dryRun {
		s.logger.Info("dry run, writes go to an in-memory store")
		return app.NewIngestionService(s.cfg, memory.NewStore(memory.SeedClubs()...), s.logger), func() {}, nil
	}

	db, err := app.OpenDB(ctx, s.cfg, s.logger)
	if err != nil {
		return nil, nil, err
	}
	return app.NewIngestionService(s.cfg, postgres.NewStore(db), s.logger), func() { _ = db.Close() }, nil
}

func printJSON(w io.Writer, value any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
