// Package config loads cityreports settings.
//
// Settings come from three layers, highest precedence first: command-line
// flags, an optional configuration file, and built-in defaults. The file may
// be JSONC (JSON with comments, parsed via github.com/tidwall/jsonc) or YAML
// (parsed via gopkg.in/yaml.v3); the format is chosen by file extension.
package config
