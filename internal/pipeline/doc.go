// Package pipeline owns the recording lifecycle: it admits at most one job,
// runs the capture and transcode subprocesses, maps their scraped positions
// onto a single 0-100 progress signal, places the finished artifact on the
// clipboard, and guarantees the temp recording never outlives the job.
package pipeline
