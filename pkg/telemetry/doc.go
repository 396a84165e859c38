// Package telemetry groups the observability helpers of the cleanup job.
//
// # Components
//
//   - logging: slog handler construction (console, text, json) and run-id
//     context helpers
//
// Pass metrics are owned by the cleanup package and written to a
// node-exporter textfile; there is no HTTP listener.
package telemetry
