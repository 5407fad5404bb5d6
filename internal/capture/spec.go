package capture

import "fmt"

// RegionStyle describes how a platform capture API accepts a subrectangle.
type RegionStyle int

const (
	// RegionFlags passes the region via -offset_x/-offset_y/-video_size
	// flags (gdigrab).
	RegionFlags RegionStyle = iota
	// RegionInput appends the offset to the input selector and passes the
	// size as a flag (x11grab).
	RegionInput
	// RegionFilter crops after capture with a video filter; the API itself
	// only grabs the full screen (avfoundation).
	RegionFilter
)

// PlatformSpec is a read-only capability descriptor for one operating
// system's screen capture API. Not mutated at runtime.
type PlatformSpec struct {
	OS          string
	API         string
	Input       string
	RegionStyle RegionStyle
}

var platformSpecs = map[string]PlatformSpec{
	"windows": {OS: "windows", API: "gdigrab", Input: "desktop", RegionStyle: RegionFlags},
	"linux":   {OS: "linux", API: "x11grab", Input: ":0.0", RegionStyle: RegionInput},
	"darwin":  {OS: "darwin", API: "avfoundation", Input: "1:none", RegionStyle: RegionFilter},
}

// SpecFor returns the capture descriptor for the given GOOS.
func SpecFor(goos string) (PlatformSpec, error) {
	spec, ok := platformSpecs[goos]
	if !ok {
		return PlatformSpec{}, fmt.Errorf("screen capture is not supported on %s", goos)
	}
	return spec, nil
}
