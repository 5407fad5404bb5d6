// Package notify carries the pipeline's produced events (started, progress,
// completed, failed) to UI collaborators: the CLI console, optional ntfy
// push, or both via Multi.
package notify
