// Package report generates and serializes the three cityreports outputs:
//
//   - Cities_By_Population: cities grouped by population, largest first
//   - Interstates_By_City: distinct interstates in numeric order with city counts
//   - Degrees_From_<base>: every city's degree of separation from the base city
//
// Generators are pure functions over the loaded dataset. Each report can be
// written as the line-oriented text layout (the default) or as a JSON or
// YAML document; YAML output uses gopkg.in/yaml.v3.
package report
