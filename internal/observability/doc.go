// Package observability records run metrics for the cityreports CLI.
//
// Metrics live on a private Prometheus registry so repeated runs in one
// process (tests, embedding) never collide. A run can export them in the
// text exposition format, suitable for node_exporter's textfile collector.
// Durations are measured through a clockwork.Clock so tests can use a fake.
package observability
