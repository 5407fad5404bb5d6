// Package fileutil provides small filesystem helpers shared by the pipeline
// and clipboard components.
package fileutil
