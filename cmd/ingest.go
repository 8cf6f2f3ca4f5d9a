package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/fetcher"
	"github.com/petro-intel/leadgen-cli/internal/pipeline"
)

var (
	ingestEnvFiles   []string
	ingestIntelFiles []string
	ingestOut        string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Merge raw source CSVs into one deduplicated file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var sources []pipeline.Source

		for _, path := range ingestEnvFiles {
			records, _, err := fetcher.ReadRecords(path)
			if err != nil {
				return err
			}
			sources = append(sources, pipeline.Source{
				Name:    sourceName(path),
				Records: records,
			})
		}

		for _, path := range ingestIntelFiles {
			records, _, err := fetcher.ReadRecords(path)
			if err != nil {
				return err
			}
			sources = append(sources, pipeline.Source{
				Name:          sourceName(path),
				SynthesizeIDs: true,
				Records:       records,
			})
		}

		merged, dropped := pipeline.Merge(sources)
		if err := fetcher.WriteRawCSV(ingestOut, merged); err != nil {
			return err
		}

		zap.L().Info("ingest complete",
			zap.Int("sources", len(sources)),
			zap.Int("records", len(merged)),
			zap.Int("duplicates", dropped),
			zap.String("out", ingestOut),
		)
		return nil
	},
}

// sourceName derives the source label from the filename: "parivesh.csv"
// ingests as source "parivesh".
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestEnvFiles, "env", nil, "environmental/regulatory source CSVs (IDs kept verbatim)")
	ingestCmd.Flags().StringSliceVar(&ingestIntelFiles, "intel", nil, "market intelligence source CSVs (IDs synthesized)")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "raw_leads.csv", "merged output path")
	ingestCmd.MarkFlagsOneRequired("env", "intel")
	rootCmd.AddCommand(ingestCmd)
}
