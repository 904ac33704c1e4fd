// Package cli: run.go implements the report pipeline shared by the root
// command and the per-report subcommands.
//
// Orchestration steps:
//  1. Resolve settings (flags > config file > defaults)
//  2. Load the dataset
//  3. Generate and write each requested report
//  4. Record metrics and print the run status (text or JSON)
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cityreports/internal/config"
	"github.com/shinji-kodama/cityreports/internal/dataset"
	"github.com/shinji-kodama/cityreports/internal/model"
	"github.com/shinji-kodama/cityreports/internal/observability"
	"github.com/shinji-kodama/cityreports/internal/report"
	"github.com/shinji-kodama/cityreports/internal/separation"
)

// skipReasonBaseCity labels degrees reports skipped because the base city
// was missing or ambiguous.
const skipReasonBaseCity = "base_city_not_found"

// runStatus is the outcome of one run, printed as the command result.
type runStatus struct {
	Input        string          `json:"input"`
	BaseCity     string          `json:"baseCity"`
	InputFound   bool            `json:"inputFound"`
	CitiesLoaded int             `json:"citiesLoaded"`
	LinesSkipped int             `json:"linesSkipped"`
	Written      []writtenReport `json:"written"`
	Skipped      []skippedReport `json:"skipped"`
}

type writtenReport struct {
	Report string `json:"report"`
	Path   string `json:"path"`
}

type skippedReport struct {
	Report string `json:"report"`
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// resolveConfig merges the config file (explicit --config, or one found in
// the current directory) with flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := settings.configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			VerboseLog("Config discovery skipped: %v", err)
		} else {
			found, findErr := config.Find(cwd)
			switch {
			case findErr == nil:
				path = found
			case !errors.Is(findErr, config.ErrConfigNotFound):
				return nil, model.WrapCLIError(model.ExitInvalidConfig, "failed to find config", findErr)
			}
		}
	}
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidConfig, "failed to load config", err)
		}
		cfg = loaded
		VerboseLog("Loaded config: %s", path)
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Input = settings.input
	}
	if flags.Changed("city") {
		cfg.BaseCity = settings.baseCity
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = settings.outputDir
	}
	if flags.Changed("format") {
		cfg.Format = model.OutputFormat(settings.format)
	}
	if flags.Changed("skip-malformed") {
		cfg.SkipMalformed = settings.skipMalformed
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = settings.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidConfig, "invalid settings", err)
	}
	return cfg, nil
}

// runReports generates the given reports.
//
// A missing input file is reported and ends the run without error. A base
// city that is missing or ambiguous skips only the degrees report; when
// requireBase is set (the dedicated degrees command) it is returned as a
// CLIError instead.
func runReports(cmd *cobra.Command, kinds []model.ReportKind, requireBase bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	VerboseLog("Input: %s, base city: %s, output: %s (%s)", cfg.Input, cfg.BaseCity, cfg.OutputDir, cfg.Format)

	metrics := observability.NewMetrics(nil)
	status := &runStatus{
		Input:    cfg.Input,
		BaseCity: cfg.BaseCity,
		Written:  make([]writtenReport, 0, len(kinds)),
		Skipped:  make([]skippedReport, 0),
	}

	ds, err := dataset.LoadFile(cfg.Input, dataset.Options{
		SkipMalformed: cfg.SkipMalformed,
		OnSkip: func(le *dataset.LineError) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipping %v\n", le)
		},
	})
	switch {
	case errors.Is(err, dataset.ErrInputNotFound):
		if IsJSONOutput() {
			return printRunStatusJSON(out, status)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%q not found.\n", cfg.Input)
		return nil
	case errors.Is(err, dataset.ErrMalformedLine):
		return model.WrapCLIError(model.ExitInvalidDataset, "failed to load dataset", err)
	case err != nil:
		return model.WrapCLIError(model.ExitGeneralError, "failed to load dataset", err)
	}

	status.InputFound = true
	status.CitiesLoaded = len(ds.Cities)
	status.LinesSkipped = len(ds.Skipped)
	metrics.ObserveDataset(len(ds.Cities), len(ds.Skipped))
	VerboseLog("Loaded %d cities (%d lines skipped)", len(ds.Cities), len(ds.Skipped))

	if !IsJSONOutput() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Writing files...")
		fmt.Fprintln(out)
	}

	var baseErr error
	for _, kind := range kinds {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		rep, err := buildReport(kind, cfg, ds.Cities, metrics)
		if errors.Is(err, separation.ErrBaseCityNotFound) {
			VerboseLog("Degrees report skipped: %v", err)
			baseErr = err
			metrics.ReportSkipped(kind, skipReasonBaseCity)
			skipped := skippedReport{
				Report: kind.String(),
				File:   filepath.Join(cfg.OutputDir, report.FileNameFor(kind, cfg.BaseCity, cfg.Format)),
				Reason: err.Error(),
			}
			status.Skipped = append(status.Skipped, skipped)
			if !IsJSONOutput() {
				printBaseCityNotFound(out, cfg.BaseCity, skipped.File)
			}
			continue
		}
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to generate %s report", kind), err)
		}

		path, err := report.WriteFile(cfg.OutputDir, rep, cfg.Format)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to write %s report", kind), err)
		}
		metrics.ReportWritten(kind)
		status.Written = append(status.Written, writtenReport{Report: kind.String(), Path: path})
		if !IsJSONOutput() {
			fmt.Fprintf(out, "  %s has been written.\n", path)
		}
	}

	elapsed := metrics.Finish()
	VerboseLog("Run finished in %s", elapsed)
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to write metrics", err)
		}
		VerboseLog("Metrics written to %s", cfg.MetricsFile)
	}

	if IsJSONOutput() {
		if err := printRunStatusJSON(out, status); err != nil {
			return err
		}
	}

	if baseErr != nil && requireBase {
		return model.WrapCLIError(model.ExitBaseCityNotFound,
			fmt.Sprintf("base city %q not found in dataset", cfg.BaseCity), baseErr)
	}
	return nil
}

// buildReport runs the generator for one report kind.
func buildReport(kind model.ReportKind, cfg *config.Config, cities []model.City, metrics *observability.Metrics) (report.Report, error) {
	switch kind {
	case model.ReportPopulation:
		return report.Population(cities), nil
	case model.ReportInterstates:
		return report.Interstates(cities), nil
	case model.ReportDegrees:
		res, err := separation.Compute(cities, cfg.BaseCity)
		if err != nil {
			return nil, err
		}
		metrics.ObserveSeparation(res.MaxDegree(), res.Unreachable())
		VerboseLog("Degrees computed: max degree %d, %d unreachable", res.MaxDegree(), res.Unreachable())
		return report.Degrees(cfg.BaseCity, cities, res), nil
	default:
		return nil, fmt.Errorf("unknown report %q", kind)
	}
}

// printBaseCityNotFound explains why the degrees report was not produced.
func printBaseCityNotFound(out io.Writer, baseCity, file string) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Provided base city %q not found in dataset.\n", baseCity)
	fmt.Fprintf(out, "  The file %q will not be produced.\n", file)
	fmt.Fprintln(out)
}
