// Package logging builds the slog loggers used across macadam.
//
// Interactive runs get a compact console handler, scripted runs a JSON
// handler. The typed attr helpers and field-name constants keep structured
// keys consistent between the sync engine, the backends, and the CLI.
package logging
