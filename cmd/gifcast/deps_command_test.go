package main

import (
	"strings"
	"testing"

	"gifcast/internal/deps"
)

func TestRenderDepLine(t *testing.T) {
	available := deps.Status{Name: "FFmpeg", Command: "/usr/bin/ffmpeg", Available: true}
	line := renderDepLine(available, false)
	if !strings.Contains(line, "[OK]") || !strings.Contains(line, "/usr/bin/ffmpeg") {
		t.Fatalf("unexpected line %q", line)
	}

	missing := deps.Status{Name: "FFmpeg", Detail: `binary "ffmpeg" not found`}
	line = renderDepLine(missing, false)
	if !strings.Contains(line, "[ERROR]") || !strings.Contains(line, "not found") {
		t.Fatalf("unexpected line %q", line)
	}

	optional := deps.Status{Name: "xclip", Optional: true, Detail: `binary "xclip" not found`}
	line = renderDepLine(optional, false)
	if !strings.Contains(line, "[WARN]") {
		t.Fatalf("optional tool must warn, got %q", line)
	}
}

func TestRenderStatusLineColor(t *testing.T) {
	plain := renderStatusLine("FFmpeg", statusOK, "ffmpeg", false)
	if strings.Contains(plain, ansiGreen) {
		t.Fatalf("expected no color codes, got %q", plain)
	}
	colored := renderStatusLine("FFmpeg", statusOK, "ffmpeg", true)
	if !strings.HasPrefix(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colored line, got %q", colored)
	}
}
