package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/decline-cli/internal/config"
	"github.com/sells-group/decline-cli/internal/engine"
	"github.com/sells-group/decline-cli/internal/importer"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "decline-cli",
	Short: "Production decline and recoverable reserves analysis",
	Long:  "Imports yearly oil and liquid production, derives the N/S, S/P, M, S, P and K decline series, averages them over the active years and estimates recoverable and remaining reserves.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// engineConfig maps the loaded configuration onto the engine.
func engineConfig(c *config.Config) engine.Config {
	return engine.Config{
		Recovery: engine.RecoveryFactors{
			Liquid: c.Engine.Recovery.Liquid,
			Oil:    c.Engine.Recovery.Oil,
			Water:  c.Engine.Recovery.Water,
		},
		MaxRecords:  c.Engine.MaxRecords,
		StrictYears: c.Engine.StrictYears,
	}
}

// importOptions maps the loaded configuration onto the importer.
func importOptions(c *config.Config) importer.Options {
	return importer.Options{
		SheetIndex:   c.Import.SheetIndex,
		SheetName:    c.Import.SheetName,
		HasHeader:    c.Import.HasHeader,
		YearColumn:   c.Import.YearColumn,
		OilColumn:    c.Import.OilColumn,
		LiquidColumn: c.Import.LiquidColumn,
		ActiveColumn: c.Import.ActiveColumn,
		ActivePoints: c.Import.ActivePoints,
	}
}
