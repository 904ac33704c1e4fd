// Package cli implements the cobra-based CLI commands for cityreports.
//
// The root command generates all three reports in one run. Each report also
// has its own subcommand (population, interstates, degrees) defined in its
// own file. This file defines the root command, the global flags shared by
// every command, and error/exit-code handling.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cityreports/internal/config"
	"github.com/shinji-kodama/cityreports/internal/model"
)

// Global flag variables shared across all commands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether status output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output on stderr.
	verbose bool

	// settings holds the run-setting flags. Only flags the user set
	// explicitly override values from the config file.
	settings runSettings
)

// runSettings holds the flag values that map onto config.Config.
type runSettings struct {
	configPath    string // --config: explicit config file
	input         string // --file
	baseCity      string // --city
	outputDir     string // --output-dir
	format        string // --format
	skipMalformed bool   // --skip-malformed
	metricsFile   string // --metrics-file
}

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running the root command without a subcommand generates every report.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cityreports",
		Short: "Population, interstate, and degrees-of-separation reports for a city dataset",
		Long: `cityreports reads a pipe-delimited city dataset and writes three reports:

  Cities_By_Population    cities grouped by population, largest first
  Interstates_By_City     interstates in numeric order with the number of cities on each
  Degrees_From_<city>     each city's degrees of separation from a base city, where
                          two cities are one degree apart when they share an interstate

Dataset lines look like:

  population|name|state|I-5;I-90

Examples:
  cityreports
  cityreports -f data/cities.txt -c Seattle
  cityreports degrees --city Denver --format json -o reports`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd, model.AllReports(), false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&settings.input, "file", "f", config.DefaultInput, "Name of the input file")
	flags.StringVarP(&settings.baseCity, "city", "c", config.DefaultBaseCity, "Name of the city to use as the base for the degrees report")
	flags.StringVarP(&settings.outputDir, "output-dir", "o", config.DefaultOutputDir, "Directory to write report files to")
	flags.StringVar(&settings.format, "format", string(model.FormatText), "Report format: text, json, yaml")
	flags.StringVar(&settings.configPath, "config", "", "Config file (default: cityreports.{jsonc,json,yaml,yml} in the current directory, if present)")
	flags.BoolVar(&settings.skipMalformed, "skip-malformed", false, "Skip malformed dataset lines with a warning instead of failing")
	flags.StringVar(&settings.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flags.BoolVar(&jsonOutput, "json", false, "Output status in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewPopulationCommand())
	rootCmd.AddCommand(NewInterstatesCommand())
	rootCmd.AddCommand(NewDegreesCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to exit
// code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output, so errors go
		// to stderr even in JSON mode.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
