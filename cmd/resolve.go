package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

var (
	resolveLocation string
	resolveState    string
	resolveText     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a location string to coordinates and the nearest depot",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := refdata.Load(cfg.Data.RefDir)
		if err != nil {
			return err
		}

		resolver := geo.NewResolver(tables.Gazetteer)

		out := struct {
			District string         `json:"district"`
			Resolved bool           `json:"resolved"`
			Coord    *model.Coord   `json:"coord,omitempty"`
			Depot    *refdata.Depot `json:"nearest_depot,omitempty"`
			DepotKM  *float64       `json:"depot_distance_km,omitempty"`
		}{
			District: geo.ExtractDistrict(resolveLocation, resolveText, resolveState),
		}

		coord, ok := resolver.Resolve(resolveLocation, resolveText, resolveState)
		out.Resolved = ok
		if ok {
			out.Coord = &coord
			idx, dist := geo.Nearest(coord, tables.Gazetteer.DepotCoords())
			if idx >= 0 {
				out.Depot = &tables.Gazetteer.Depots[idx]
				out.DepotKM = &dist
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveLocation, "location", "", "location text")
	resolveCmd.Flags().StringVar(&resolveText, "text", "", "auxiliary free text (project description)")
	resolveCmd.Flags().StringVar(&resolveState, "state", "", "state name")
	rootCmd.AddCommand(resolveCmd)
}
