// Package cli: population.go implements the "cityreports population" command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// NewPopulationCommand creates the "population" cobra command, which writes
// only the Cities_By_Population report.
func NewPopulationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "population",
		Short: "Write the cities-by-population report",
		Long: `Group cities by population, largest first. Cities sharing a population
are listed under one header, ordered by state and then by name.

Examples:
  cityreports population
  cityreports population -f data/cities.txt --format yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd, []model.ReportKind{model.ReportPopulation}, false)
		},
	}
}
