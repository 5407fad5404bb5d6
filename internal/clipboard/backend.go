package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var commandContext = exec.CommandContext

// Backend writes payloads to the system clipboard. The command backend
// shells out to the platform clipboard tool; tests substitute a fake.
type Backend interface {
	// WriteImage places image bytes on the clipboard under their native
	// format ("gif", "png", "bmp").
	WriteImage(ctx context.Context, format string, data []byte) error
	// WriteText places a plain text payload on the clipboard.
	WriteText(ctx context.Context, text string) error
	// WriteFileReference adds a platform file-reference payload so
	// clipboard-aware file-paste targets can resolve the original file.
	WriteFileReference(ctx context.Context, path string) error
}

// NewCommandBackend selects the clipboard tool for the given GOOS. tool, when
// non-empty, overrides the default choice.
func NewCommandBackend(goos, tool string) (Backend, error) {
	tool = strings.TrimSpace(tool)
	switch goos {
	case "linux":
		if tool == "" {
			if os.Getenv("WAYLAND_DISPLAY") != "" {
				tool = "wl-copy"
			} else {
				tool = "xclip"
			}
		}
		return &linuxBackend{tool: tool}, nil
	case "darwin":
		return &darwinBackend{}, nil
	case "windows":
		return &windowsBackend{}, nil
	default:
		return nil, fmt.Errorf("clipboard is not supported on %s", goos)
	}
}

type linuxBackend struct {
	tool string
}

func (b *linuxBackend) WriteImage(ctx context.Context, format string, data []byte) error {
	mime := "image/" + format
	var cmd *exec.Cmd
	if b.tool == "wl-copy" {
		cmd = commandContext(ctx, b.tool, "--type", mime)
	} else {
		cmd = commandContext(ctx, b.tool, "-selection", "clipboard", "-t", mime)
	}
	cmd.Stdin = bytes.NewReader(data)
	return runQuiet(cmd)
}

func (b *linuxBackend) WriteText(ctx context.Context, text string) error {
	var cmd *exec.Cmd
	if b.tool == "wl-copy" {
		cmd = commandContext(ctx, b.tool)
	} else {
		cmd = commandContext(ctx, b.tool, "-selection", "clipboard")
	}
	cmd.Stdin = strings.NewReader(text)
	return runQuiet(cmd)
}

func (b *linuxBackend) WriteFileReference(ctx context.Context, path string) error {
	uri := "file://" + filepath.ToSlash(path) + "\n"
	var cmd *exec.Cmd
	if b.tool == "wl-copy" {
		cmd = commandContext(ctx, b.tool, "--type", "text/uri-list")
	} else {
		cmd = commandContext(ctx, b.tool, "-selection", "clipboard", "-t", "text/uri-list")
	}
	cmd.Stdin = strings.NewReader(uri)
	return runQuiet(cmd)
}

type darwinBackend struct{}

func (b *darwinBackend) WriteImage(ctx context.Context, format string, data []byte) error {
	tmp, err := writeTempPayload(data, "clip-*."+format)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	class := map[string]string{"gif": "GIF picture", "png": "«class PNGf»", "bmp": "TIFF picture"}[format]
	if class == "" {
		class = "picture"
	}
	script := fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as %s)`, tmp, class)
	return runQuiet(commandContext(ctx, "osascript", "-e", script))
}

func (b *darwinBackend) WriteText(ctx context.Context, text string) error {
	cmd := commandContext(ctx, "pbcopy")
	cmd.Stdin = strings.NewReader(text)
	return runQuiet(cmd)
}

func (b *darwinBackend) WriteFileReference(ctx context.Context, path string) error {
	script := fmt.Sprintf(`set the clipboard to (POSIX file %q)`, path)
	return runQuiet(commandContext(ctx, "osascript", "-e", script))
}

type windowsBackend struct{}

func (b *windowsBackend) WriteImage(ctx context.Context, format string, data []byte) error {
	tmp, err := writeTempPayload(data, "clip-*."+format)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	script := fmt.Sprintf(
		`Add-Type -AssemblyName System.Windows.Forms,System.Drawing; `+
			`$img = [System.Drawing.Image]::FromFile(%q); `+
			`[System.Windows.Forms.Clipboard]::SetImage($img)`, tmp)
	return runQuiet(commandContext(ctx, "powershell", "-NoProfile", "-STA", "-Command", script))
}

func (b *windowsBackend) WriteText(ctx context.Context, text string) error {
	return runQuiet(commandContext(ctx, "powershell", "-NoProfile", "-Command",
		fmt.Sprintf("Set-Clipboard -Value %q", text)))
}

func (b *windowsBackend) WriteFileReference(ctx context.Context, path string) error {
	return runQuiet(commandContext(ctx, "powershell", "-NoProfile", "-Command",
		fmt.Sprintf("Set-Clipboard -Path %q", path)))
}

func writeTempPayload(data []byte, pattern string) (string, error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create clipboard temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write clipboard temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func runQuiet(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}
