// Package logging builds the slog logger used by the cleanup job.
//
// Three formats are available:
//   - console: "<tag> <message>" lines, attributes only on warnings, errors
//     or at debug level
//   - text: slog's key=value format
//   - json: one JSON object per line
//
// # Usage
//
//	logger, err := logging.Install(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	    Tag:    "[SafeTube Cleanup]",
//	})
//
// Install sets the logger as the slog default; packages obtain component
// loggers with slog.Default().With("component", ...).
//
// Run IDs travel in the context:
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger = logging.WithContext(ctx, logger) // adds run_id
package logging
