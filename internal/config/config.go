package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// Default values used when neither a flag nor the config file sets a field.
const (
	DefaultInput     = "cities.txt"
	DefaultBaseCity  = "Chicago"
	DefaultOutputDir = "."
)

// ErrConfigNotFound is returned by Find when no config file exists.
var ErrConfigNotFound = errors.New("config: no configuration file found")

// candidateNames are the file names Find looks for, in priority order.
var candidateNames = []string{
	"cityreports.jsonc",
	"cityreports.json",
	"cityreports.yaml",
	"cityreports.yml",
}

// Config holds all settings for one run.
type Config struct {
	// Input is the path to the pipe-delimited dataset.
	Input string `json:"input" yaml:"input"`

	// BaseCity is the name of the city degrees are measured from.
	BaseCity string `json:"baseCity" yaml:"baseCity"`

	// OutputDir is the directory report files are written to.
	OutputDir string `json:"outputDir" yaml:"outputDir"`

	// Format is the report serialization (text, json, yaml).
	Format model.OutputFormat `json:"format" yaml:"format"`

	// SkipMalformed drops malformed dataset lines with a warning instead of
	// aborting the run.
	SkipMalformed bool `json:"skipMalformed" yaml:"skipMalformed"`

	// MetricsFile, if set, receives run metrics in the Prometheus text
	// exposition format.
	MetricsFile string `json:"metricsFile,omitempty" yaml:"metricsFile,omitempty"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		BaseCity:  DefaultBaseCity,
		OutputDir: DefaultOutputDir,
		Format:    model.FormatText,
	}
}

// LoadFile reads a configuration file on top of the defaults. Fields absent
// from the file keep their default values. The result is not validated:
// callers apply their overrides first and then call Validate.
//
// Files ending in .yaml or .yml are parsed as YAML; everything else is
// treated as JSONC, with comments and trailing commas stripped before
// decoding.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Find returns the path of the first configuration file present in dir.
// Returns ErrConfigNotFound when none of the candidate names exist, and the
// stat error for a candidate that exists but cannot be inspected.
func Find(dir string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to inspect config %s: %w", path, err)
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrConfigNotFound, dir)
}

// Validate checks required fields and normalizes the output format.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input file must not be empty")
	}
	if strings.TrimSpace(c.BaseCity) == "" {
		return errors.New("base city must not be empty")
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Format == "" {
		c.Format = model.FormatText
	}
	format, err := model.ParseOutputFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Format = format
	return nil
}
