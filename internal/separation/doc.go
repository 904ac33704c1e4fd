// Package separation computes degrees of separation between cities.
//
// Two cities are adjacent when they share at least one interstate. Starting
// from a base city (degree 0), the engine expands frontier by frontier: every
// unresolved city carrying an interstate used by the previous frontier gets
// the next degree. Cities never reached resolve to model.DegreeUnreachable.
//
// The result is a separate CityID → degree mapping; City records are never
// mutated, so the same dataset can feed other reports while degrees are
// being computed.
package separation
