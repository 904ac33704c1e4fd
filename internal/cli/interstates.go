// Package cli: interstates.go implements the "cityreports interstates" command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// NewInterstatesCommand creates the "interstates" cobra command, which writes
// only the Interstates_By_City report.
func NewInterstatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interstates",
		Short: "Write the interstates-by-city report",
		Long: `List every interstate in the dataset in numeric order (I-5 before I-10)
with the number of cities it passes through.

Examples:
  cityreports interstates
  cityreports interstates --format json -o reports`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd, []model.ReportKind{model.ReportInterstates}, false)
		},
	}
}
