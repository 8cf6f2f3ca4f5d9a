package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/fetcher"
	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/store"
)

var (
	exportSpecialty bool
	exportMinScore  float64
	exportOut       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranked leads from the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		minScore := exportMinScore
		if minScore == 0 {
			minScore = cfg.Scoring.MinExportScore
		}

		leads, err := env.Store.ListLeads(ctx, store.Filter{MinScore: minScore})
		if err != nil {
			return err
		}

		name := "ranked_leads.csv"
		if exportSpecialty {
			leads = filterSpecialty(env, leads)
			name = "specialty_leads.csv"
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.Export.Dir, name)
		}
		if err := fetcher.WriteLeadsCSV(out, leads); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.Int("leads", len(leads)),
			zap.Float64("min_score", minScore),
			zap.String("out", out),
		)
		return nil
	},
}

// filterSpecialty keeps leads whose text mentions a specialty product and
// stamps the matched products over the sector-based recommendation.
func filterSpecialty(env *pipelineEnv, leads []model.Lead) []model.Lead {
	var out []model.Lead
	for _, l := range leads {
		matches := env.Tables.Normalize.SpecialtyMatches(l.Description + " " + l.ProjectName)
		if len(matches) == 0 {
			continue
		}
		l.Products = strings.Join(matches, ", ")
		out = append(out, l)
	}
	return out
}

func init() {
	exportCmd.Flags().BoolVar(&exportSpecialty, "specialty", false, "export only specialty-product leads")
	exportCmd.Flags().Float64Var(&exportMinScore, "min-score", 0, "minimum final score (default from config)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default under export dir)")
	rootCmd.AddCommand(exportCmd)
}
