// Package cli: degrees.go implements the "cityreports degrees" command.
//
// Unlike the root command, which treats a missing base city as a skipped
// report, this command fails with ExitBaseCityNotFound so scripts can tell
// that nothing was produced.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// NewDegreesCommand creates the "degrees" cobra command, which writes only
// the Degrees_From_<city> report.
func NewDegreesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "degrees",
		Short: "Write the degrees-of-separation report for a base city",
		Long: `Compute every city's degrees of separation from the base city. Two cities
are one degree apart when they share an interstate; cities with no path to
the base city are listed with degree -1.

The base city is matched case-insensitively and must match exactly one city.

Examples:
  cityreports degrees
  cityreports degrees --city "Salt Lake City"`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd, []model.ReportKind{model.ReportDegrees}, true)
		},
	}
}
