package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/match-ingest/internal/platform/logging"
	"github.com/riskibarqy/match-ingest/internal/usecase"
)

const manifestFile = "manifest.json"

type ingester interface {
	Ingest(ctx context.Context, input usecase.IngestInput) (usecase.IngestResult, error)
}

type batchOutcome struct {
	File       string `json:"file"`
	ClubID     string `json:"club_id"`
	Status     string `json:"status"`
	MatchID    string `json:"match_id,omitempty"`
	Score      string `json:"score,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type batchReport struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Outcomes  []batchOutcome `json:"outcomes"`
}

func newBatchCmd(state *cliState) *cobra.Command {
	var dir string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Ingest every feed listed in <dir>/" + manifestFile + " through a worker pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := loadManifest(dir)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = state.cfg.IngestWorkers
			}

			svc, release, err := state.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			report, err := runBatch(cmd.Context(), svc, dir, specs, workers, state.cfg.IngestTimeout, state.logger)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d ingestions failed", report.Failed, len(specs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding the feeds and "+manifestFile)
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent ingestions (default INGEST_WORKERS)")
	return cmd
}

func loadManifest(dir string) ([]matchSpec, error) {
	raw, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var specs []matchSpec
	if err := sonic.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("manifest %s lists no feeds", filepath.Join(dir, manifestFile))
	}
	for i, spec := range specs {
		if spec.File == "" {
			return nil, fmt.Errorf("manifest entry #%d has no file", i)
		}
	}
	return specs, nil
}

// runBatch ingests each manifest entry on an ants pool. Ingestions of one club still commit one
// at a time; the service serializes them.
func runBatch(
	ctx context.Context,
	svc ingester,
	dir string,
	specs []matchSpec,
	workers int,
	timeout time.Duration,
	logger *logging.Logger,
) (batchReport, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return batchReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]batchOutcome, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = ingestOne(ctx, svc, dir, spec, timeout)
			logger.Info("batch entry finished",
				"file", spec.File,
				"status", outcomes[i].Status,
				"duration_ms", outcomes[i].DurationMs,
			)
		}); err != nil {
			wg.Done()
			return batchReport{}, fmt.Errorf("submit %s to worker pool: %w", spec.File, err)
		}
	}
	wg.Wait()

	report := batchReport{Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Status == "ok" {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func ingestOne(ctx context.Context, svc ingester, dir string, spec matchSpec, timeout time.Duration) batchOutcome {
	started := time.Now()
	outcome := batchOutcome{File: spec.File, ClubID: spec.ClubID, Status: "failed"}

	fail := func(err error) batchOutcome {
		outcome.Error = err.Error()
		outcome.DurationMs = time.Since(started).Milliseconds()
		return outcome
	}

	feedData, err := os.ReadFile(filepath.Join(dir, spec.File))
	if err != nil {
		return fail(fmt.Errorf("read feed: %w", err))
	}
	input, err := spec.input(feedData)
	if err != nil {
		return fail(err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	result, err := svc.Ingest(ctx, input)
	if err != nil {
		return fail(err)
	}

	outcome.Status = "ok"
	outcome.MatchID = result.MatchID
	outcome.Score = result.Score
	outcome.DurationMs = time.Since(started).Milliseconds()
	return outcome
}
