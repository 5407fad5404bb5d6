// Package deps checks the external binaries gifcast shells out to. The
// pipeline consults ResolveEncoder before every recording; the "deps"
// command prints the full report.
package deps
