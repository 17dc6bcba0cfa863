// Package logging assembles the structured slog loggers used across the
// tool.
//
// It centralizes level and output plumbing and picks a text handler on a
// terminal and JSON elsewhere, so piped or captured output stays
// machine-readable without extra configuration. Prefer these constructors
// over hand-rolled slog setup so every component emits data with the same
// shape.
package logging
