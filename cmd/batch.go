package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/decline-cli/internal/engine"
	"github.com/sells-group/decline-cli/internal/model"
)

var (
	batchFiles       []string
	batchGlob        string
	batchConcurrency int
	batchOutput      string
	batchActive      int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many production files concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		files, err := resolveFiles(batchFiles, batchGlob)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentFiles
		}

		eng := engine.New(engineConfig(cfg))
		summaries, err := processBatch(ctx, files, concurrency, func(ctx context.Context, path string) ([]model.ProductionRecord, *model.Bundle, error) {
			series, err := loadSeries(ctx, cfg, path, batchActive)
			if err != nil {
				return nil, nil, err
			}
			b, err := eng.Compute(series)
			return series, b, err
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrapf(err, "batch: create %s", batchOutput)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		return writeSummaries(out, summaries)
	},
}

func init() {
	batchCmd.Flags().StringSliceVar(&batchFiles, "files", nil, "comma-separated production files")
	batchCmd.Flags().StringVar(&batchGlob, "glob", "", "glob pattern selecting production files")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max files analyzed at once (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write the JSON summary to a file instead of stdout")
	batchCmd.Flags().IntVar(&batchActive, "active", -1, "flag the last N records of every file active (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// fileSummary is the per-file outcome written by the batch command.
type fileSummary struct {
	File    string              `json:"file"`
	Records int                 `json:"records"`
	Active  int                 `json:"active"`
	Results []model.ResultEntry `json:"results,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// analyzeFunc imports and computes a single file.
type analyzeFunc func(ctx context.Context, path string) ([]model.ProductionRecord, *model.Bundle, error)

// resolveFiles merges the explicit file list with the glob matches,
// dropping duplicates while keeping order.
func resolveFiles(files []string, pattern string) ([]string, error) {
	all := append([]string(nil), files...)
	if pattern != "" {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "batch: glob %q", pattern)
		}
		all = append(all, matches...)
	}

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, f := range all {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, eris.New("batch: no input files (use --files or --glob)")
	}
	return out, nil
}

// processBatch analyzes files concurrently. A failing file is recorded in
// its summary and does not abort the batch.
func processBatch(ctx context.Context, files []string, concurrency int, analyze analyzeFunc) ([]fileSummary, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	summaries := make([]fileSummary, len(files))
	var succeeded, failed atomic.Int64

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			log := zap.L().With(zap.String("file", path))
			summary := fileSummary{File: path}

			series, b, err := analyze(gctx, path)
			if err != nil {
				failed.Add(1)
				log.Error("analysis failed", zap.Error(err))
				summary.Error = err.Error()
				summaries[i] = summary
				return nil // don't abort batch on individual failure
			}

			summary.Records = len(series)
			summary.Active = len(model.ActiveRecords(series))
			if b != nil {
				summary.Results = b.Results
			}
			summaries[i] = summary

			succeeded.Add(1)
			log.Info("analysis complete",
				zap.Int("records", summary.Records),
				zap.Int("results", len(summary.Results)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return summaries, nil
}

func writeSummaries(w io.Writer, summaries []fileSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaries); err != nil {
		return eris.Wrap(err, "batch: write summary")
	}
	return nil
}
