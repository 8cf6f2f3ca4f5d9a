package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/fetcher"
)

var (
	enrichInput  string
	enrichNoXLSX bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Score merged leads, assign officers, and snapshot the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		records, skipped, err := fetcher.ReadRecords(enrichInput)
		if err != nil {
			return err
		}

		leads := env.Pipeline.Run(records)

		runID, err := env.Store.ReplaceLeads(ctx, leads)
		if err != nil {
			return err
		}

		csvPath := filepath.Join(cfg.Export.Dir, "scored_leads.csv")
		if err := fetcher.WriteLeadsCSV(csvPath, leads); err != nil {
			return err
		}

		if !enrichNoXLSX {
			xlsxPath := filepath.Join(cfg.Export.Dir, "scored_leads.xlsx")
			if err := fetcher.WriteLeadsXLSX(xlsxPath, leads); err != nil {
				return err
			}
		}

		zap.L().Info("enrich complete",
			zap.String("run_id", runID),
			zap.Int("input", len(records)),
			zap.Int("skipped", skipped),
			zap.Int("scored", len(leads)),
			zap.String("export_dir", cfg.Export.Dir),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "raw_leads.csv", "merged raw leads CSV")
	enrichCmd.Flags().BoolVar(&enrichNoXLSX, "no-xlsx", false, "skip the XLSX workbook export")
	rootCmd.AddCommand(enrichCmd)
}
