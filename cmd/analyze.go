package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/decline-cli/internal/config"
	"github.com/sells-group/decline-cli/internal/engine"
	"github.com/sells-group/decline-cli/internal/export"
	"github.com/sells-group/decline-cli/internal/importer"
	"github.com/sells-group/decline-cli/internal/model"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

type analyzeOptions struct {
	File      string
	Active    int // negative keeps the flags set by the importer
	Format    string
	Method    string
	XLSX      string
	Output    string
	DryRun    bool
	ShowInput bool
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a production history file",
	Long:  "Imports an .xlsx or .csv production history, computes every decline series and the reserve estimates, and prints or exports them.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAnalyze(cmd.Context(), cfg, cmd.OutOrStdout(), analyzeOpts)
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeOpts.File, "file", "", "path to the .xlsx or .csv production history (required)")
	f.IntVar(&analyzeOpts.Active, "active", -1, "flag the last N records active (default from config)")
	f.StringVar(&analyzeOpts.Format, "format", formatText, "output format: text, json, yaml or csv")
	f.StringVar(&analyzeOpts.Method, "method", export.SeriesResults, "series written in csv format: NS, SP, M, S, P, K, reserves or results")
	f.StringVar(&analyzeOpts.XLSX, "xlsx", "", "also write the full workbook to this path")
	f.StringVarP(&analyzeOpts.Output, "output", "o", "", "write output to a file instead of stdout")
	f.BoolVar(&analyzeOpts.DryRun, "dry-run", false, "import and report the record counts without computing")
	f.BoolVar(&analyzeOpts.ShowInput, "show-input", false, "include the input table in text output")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, c *config.Config, stdout io.Writer, o analyzeOptions) error {
	format := strings.ToLower(o.Format)
	switch format {
	case formatText, formatJSON, formatYAML, formatCSV:
	default:
		return eris.Errorf("analyze: unknown format %q", o.Format)
	}
	if format == formatCSV {
		if _, ok := export.NormalizeSeries(o.Method); !ok {
			return eris.Errorf("analyze: unknown method %q", o.Method)
		}
	}

	series, err := loadSeries(ctx, c, o.File, o.Active)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("file", o.File))

	if o.DryRun {
		active := len(model.ActiveRecords(series))
		log.Info("dry run", zap.Int("records", len(series)), zap.Int("active", active))
		_, err := fmt.Fprintf(stdout, "%s: %d records, %d active\n", o.File, len(series), active)
		return err
	}

	b, err := engine.New(engineConfig(c)).Compute(series)
	if err != nil {
		return eris.Wrap(err, "analyze: compute")
	}

	out := stdout
	if o.Output != "" {
		f, err := os.Create(o.Output)
		if err != nil {
			return eris.Wrapf(err, "analyze: create %s", o.Output)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	switch format {
	case formatJSON:
		err = export.WriteJSON(out, b)
	case formatYAML:
		err = export.WriteYAML(out, b)
	case formatCSV:
		err = export.WriteSeriesCSV(out, b, o.Method)
	default:
		err = export.RenderText(out, series, b, export.TextOptions{
			Language: c.Export.Language,
			Series:   o.ShowInput,
		})
	}
	if err != nil {
		return eris.Wrap(err, "analyze: write output")
	}

	if o.XLSX != "" {
		if err := export.SaveWorkbook(o.XLSX, series, b, export.WorkbookOptions{Language: c.Export.Language}); err != nil {
			return err
		}
		log.Info("workbook written", zap.String("path", o.XLSX))
	}

	log.Info("analysis complete",
		zap.Int("records", len(series)),
		zap.Int("results", len(b.Results)),
	)
	return nil
}

// loadSeries imports path and, when active is not negative, re-flags the
// last active records.
func loadSeries(ctx context.Context, c *config.Config, path string, active int) ([]model.ProductionRecord, error) {
	series, err := importer.Load(ctx, path, importOptions(c))
	if err != nil {
		return nil, err
	}
	if active >= 0 {
		series = importer.SetActiveLast(series, active)
	}
	return series, nil
}
