// Package history records finished recording jobs in a local SQLite
// database so the "history" command can list past clips and failures.
package history
