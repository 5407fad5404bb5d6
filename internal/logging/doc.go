// Package logging assembles the structured slog loggers used across gifcast.
//
// It owns the console/JSON handler split, level and output plumbing, and the
// Attr helpers components use to tag log lines. Prefer these constructors
// over hand-rolled slog setup so every component emits data with the same
// shape.
package logging
