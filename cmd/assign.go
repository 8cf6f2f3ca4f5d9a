package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/officer"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

var (
	assignLocation string
	assignState    string
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Look up the responsible officer for a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := refdata.Load(cfg.Data.RefDir)
		if err != nil {
			return err
		}

		resolver := geo.NewResolver(tables.Gazetteer)
		svc := officer.NewService(tables.Officers, resolver)

		assignment := svc.Assign(assignLocation, assignState)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assignment)
	},
}

func init() {
	assignCmd.Flags().StringVar(&assignLocation, "location", "", "lead location text")
	assignCmd.Flags().StringVar(&assignState, "state", "", "lead state")
	_ = assignCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(assignCmd)
}
