package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// ResolveEncoder locates the configured ffmpeg binary. The pipeline refuses
// to start when the encoder is unavailable rather than spawning and failing
// later, so this check is the EncoderUnavailable gate.
func ResolveEncoder(binary string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Captures the screen and transcodes clips",
	}

	name := strings.TrimSpace(binary)
	if name == "" {
		name = "ffmpeg"
	}
	resolved, err := exec.LookPath(name)
	if err != nil {
		result.Command = name
		result.Available = false
		result.Detail = fmt.Sprintf("binary %q not found", name)
		return result
	}
	result.Command = resolved
	result.Available = true
	return result
}

// ClipboardRequirements lists the clipboard tools for the given GOOS. All
// are optional: when none is present, clipboard placement degrades to a
// path-copy through the artifact writer's fallback chain.
func ClipboardRequirements(goos string) []Requirement {
	switch goos {
	case "linux":
		return []Requirement{
			{Name: "wl-copy", Command: "wl-copy", Description: "Wayland clipboard", Optional: true},
			{Name: "xclip", Command: "xclip", Description: "X11 clipboard", Optional: true},
		}
	case "darwin":
		return []Requirement{
			{Name: "osascript", Command: "osascript", Description: "macOS clipboard scripting", Optional: true},
			{Name: "pbcopy", Command: "pbcopy", Description: "macOS text clipboard", Optional: true},
		}
	case "windows":
		return []Requirement{
			{Name: "PowerShell", Command: "powershell", Description: "Windows clipboard scripting", Optional: true},
		}
	default:
		return nil
	}
}
