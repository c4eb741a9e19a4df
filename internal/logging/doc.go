// Package logging constructs the slog loggers used by every command and
// pipeline stage. Output is either a compact console format or JSON, and
// loggers travel via context so stages inherit run-scoped attributes.
package logging
