// Package model defines the domain types and value objects for the
// cityreports CLI.
//
// This package contains pure data structures with no external dependencies.
// City records are constructed once when the dataset is loaded and are never
// mutated afterwards; derived values such as degrees of separation live in
// separate result types owned by the component that computes them.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
