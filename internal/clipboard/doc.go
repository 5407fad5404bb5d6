// Package clipboard places finished clips on the system clipboard through an
// ordered fallback chain, degrading to a path-copy when no image payload can
// be written. Platform differences live in the command Backend; the strategy
// order itself is platform independent.
package clipboard
