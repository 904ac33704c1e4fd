// Package cli: cli_test.go exercises the commands end to end against
// datasets written to temporary directories.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/cityreports/internal/model"
)

const testDataset = `5|Chicago|IL|I-90;I-94
3|Gary|IN|I-90
1|Remote|ZZ|
3|Aurora|IL|I-88
`

// runCLI executes the root command with args and returns captured output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// setup writes the dataset into a fresh directory and returns the input
// path and an output directory.
func setup(t *testing.T, data string) (input, outDir string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "cities.txt")
	require.NoError(t, os.WriteFile(input, []byte(data), 0o644))
	return input, filepath.Join(dir, "out")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRoot_AllReports(t *testing.T) {
	input, outDir := setup(t, testDataset)

	stdout, _, err := runCLI(t, "-f", input, "-o", outDir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Writing files...")
	for _, name := range []string{"Cities_By_Population.txt", "Interstates_By_City.txt", "Degrees_From_Chicago.txt"} {
		assert.Contains(t, stdout, "  "+filepath.Join(outDir, name)+" has been written.")
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	assert.Equal(t,
		"-1 Aurora, IL\n-1 Remote, ZZ\n1 Gary, IN\n0 Chicago, IL\n",
		readFile(t, filepath.Join(outDir, "Degrees_From_Chicago.txt")))

	assert.Equal(t,
		"I-88 1\nI-90 2\nI-94 1\n",
		readFile(t, filepath.Join(outDir, "Interstates_By_City.txt")))

	assert.Equal(t,
		"5\n\nChicago, IL\nInterstates: I-90, I-94\n\n"+
			"3\n\nAurora, IL\nInterstates: I-88\n\nGary, IN\nInterstates: I-90\n\n"+
			"1\n\nRemote, ZZ\nInterstates: \n\n",
		readFile(t, filepath.Join(outDir, "Cities_By_Population.txt")))
}

// TestRoot_InputNotFound verifies a missing dataset prints a message,
// writes nothing, and is not an error.
func TestRoot_InputNotFound(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.txt")
	outDir := filepath.Join(dir, "out")

	stdout, _, err := runCLI(t, "-f", input, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"`+input+`" not found.`)
	assert.NoDirExists(t, outDir)
}

// TestRoot_BaseCityAmbiguous verifies an ambiguous base city skips only the
// degrees report.
func TestRoot_BaseCityAmbiguous(t *testing.T) {
	input, outDir := setup(t, testDataset+"2|Springfield|IL|I-55\n2|Springfield|MO|I-44\n")

	stdout, _, err := runCLI(t, "-f", input, "-o", outDir, "-c", "springfield")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "Cities_By_Population.txt"))
	assert.FileExists(t, filepath.Join(outDir, "Interstates_By_City.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "Degrees_From_springfield.txt"))
	assert.Contains(t, stdout, `Provided base city "springfield" not found in dataset.`)
	assert.Contains(t, stdout, "will not be produced.")
}

// TestDegrees_BaseCityNotFound verifies the dedicated command fails with
// its own exit code.
func TestDegrees_BaseCityNotFound(t *testing.T) {
	input, outDir := setup(t, testDataset)

	_, _, err := runCLI(t, "degrees", "-f", input, "-o", outDir, "-c", "Peoria")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitBaseCityNotFound, cliErr.Code)
	assert.NoDirExists(t, outDir)
}

func TestSubcommands_WriteSingleReport(t *testing.T) {
	tests := []struct {
		command string
		file    string
	}{
		{"population", "Cities_By_Population.txt"},
		{"interstates", "Interstates_By_City.txt"},
		{"degrees", "Degrees_From_Gary.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			input, outDir := setup(t, testDataset)

			_, _, err := runCLI(t, tt.command, "-f", input, "-o", outDir, "--city", "Gary")
			require.NoError(t, err)

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.file, entries[0].Name())
		})
	}
}

// TestRoot_MalformedLine verifies the strict default and the skip policy.
func TestRoot_MalformedLine(t *testing.T) {
	data := testDataset + "not a city\n"

	t.Run("strict", func(t *testing.T) {
		input, outDir := setup(t, data)
		_, _, err := runCLI(t, "-f", input, "-o", outDir)
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitInvalidDataset, cliErr.Code)
		assert.NoDirExists(t, outDir)
	})

	t.Run("skip", func(t *testing.T) {
		input, outDir := setup(t, data)
		_, stderr, err := runCLI(t, "-f", input, "-o", outDir, "--skip-malformed")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Warning: skipping line 5")
		assert.FileExists(t, filepath.Join(outDir, "Degrees_From_Chicago.txt"))
	})
}

// TestRoot_JSONStatus verifies the --json status document.
func TestRoot_JSONStatus(t *testing.T) {
	input, outDir := setup(t, testDataset)

	stdout, _, err := runCLI(t, "--json", "-f", input, "-o", outDir, "-c", "Nowhere")
	require.NoError(t, err)

	var status runStatus
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.True(t, status.InputFound)
	assert.Equal(t, 4, status.CitiesLoaded)
	require.Len(t, status.Written, 2)
	assert.Equal(t, "population", status.Written[0].Report)
	require.Len(t, status.Skipped, 1)
	assert.Equal(t, "degrees", status.Skipped[0].Report)
	assert.Equal(t, filepath.Join(outDir, "Degrees_From_Nowhere.txt"), status.Skipped[0].File)
}

// TestRoot_ConfigFile verifies config values apply and explicit flags win.
func TestRoot_ConfigFile(t *testing.T) {
	input, outDir := setup(t, testDataset)
	cfgPath := filepath.Join(t.TempDir(), "cityreports.yaml")
	cfgData := "input: " + input + "\n" +
		"outputDir: " + outDir + "\n" +
		"baseCity: Gary\n" +
		"format: yaml\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o644))

	_, _, err := runCLI(t, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "Degrees_From_Gary.json"))
	assert.FileExists(t, filepath.Join(outDir, "Cities_By_Population.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "Degrees_From_Gary.yaml"))
}

// TestRoot_ConfigFormatOverridden verifies an invalid format in the config
// file is accepted when a flag replaces it, and rejected otherwise.
func TestRoot_ConfigFormatOverridden(t *testing.T) {
	input, outDir := setup(t, testDataset)
	cfgPath := filepath.Join(t.TempDir(), "cityreports.yaml")
	cfgData := "input: " + input + "\n" +
		"outputDir: " + outDir + "\n" +
		"format: csv\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0o644))

	_, _, err := runCLI(t, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "Cities_By_Population.json"))

	_, _, err = runCLI(t, "--config", cfgPath)
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidConfig, cliErr.Code)
}

// TestRoot_OversizedLine verifies an overlong dataset line is an invalid
// dataset, and is skipped like any malformed line with --skip-malformed.
func TestRoot_OversizedLine(t *testing.T) {
	data := testDataset + "1|" + strings.Repeat("x", 2*1024*1024) + "|ZZ|I-1\n"

	input, outDir := setup(t, data)
	_, _, err := runCLI(t, "-f", input, "-o", outDir)
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidDataset, cliErr.Code)

	_, stderr, err := runCLI(t, "-f", input, "-o", outDir, "--skip-malformed")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: skipping line 5")
	assert.FileExists(t, filepath.Join(outDir, "Degrees_From_Chicago.txt"))
}

func TestRoot_InvalidFormat(t *testing.T) {
	input, outDir := setup(t, testDataset)

	_, _, err := runCLI(t, "-f", input, "-o", outDir, "--format", "csv")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidConfig, cliErr.Code)
}

func TestRoot_MetricsFile(t *testing.T) {
	input, outDir := setup(t, testDataset)
	metricsPath := filepath.Join(t.TempDir(), "cityreports.prom")

	_, _, err := runCLI(t, "-f", input, "-o", outDir, "--metrics-file", metricsPath)
	require.NoError(t, err)

	data := readFile(t, metricsPath)
	assert.Contains(t, data, "cityreports_cities_loaded 4")
	assert.Contains(t, data, "cityreports_separation_unreachable_cities 2")
	assert.Contains(t, data, `cityreports_reports_written_total{report="degrees"} 1`)
}
