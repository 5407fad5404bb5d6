package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"gifcast/internal/capture"
)

// artifactStamp renders a timestamp safe for filenames on every platform:
// ISO 8601 with colons and periods replaced.
func artifactStamp(t time.Time) string {
	stamp := t.UTC().Format(time.RFC3339)
	stamp = strings.ReplaceAll(stamp, ":", "-")
	stamp = strings.ReplaceAll(stamp, ".", "-")
	return stamp
}

type jobPaths struct {
	temp    string
	palette string
	output  string
}

func pathsFor(dir string, format capture.Format, t time.Time) jobPaths {
	stamp := artifactStamp(t)
	return jobPaths{
		temp:    filepath.Join(dir, "temp-capture-"+stamp+"."+capture.NativeContainerExt),
		palette: filepath.Join(dir, "palette-"+stamp+".png"),
		output:  filepath.Join(dir, "capture-"+stamp+"."+format.Ext()),
	}
}
