package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/fetcher"
	"github.com/petro-intel/leadgen-cli/internal/store"
)

var topN int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Export the most complete leads from the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		n := topN
		if n == 0 {
			n = cfg.Scoring.TopN
		}

		leads, err := env.Store.ListLeads(ctx, store.Filter{MinScore: cfg.Scoring.MinExportScore})
		if err != nil {
			return err
		}
		top := fetcher.TopByConfidence(leads, n)

		out := filepath.Join(cfg.Export.Dir, "top_leads.csv")
		if err := fetcher.WriteLeadsCSV(out, top); err != nil {
			return err
		}

		zap.L().Info("top export complete",
			zap.Int("n", n),
			zap.Int("candidates", len(leads)),
			zap.String("out", out),
		)
		return nil
	},
}

func init() {
	topCmd.Flags().IntVar(&topN, "n", 0, "number of leads (default from config)")
	rootCmd.AddCommand(topCmd)
}
