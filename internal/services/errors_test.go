package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	inner := fmt.Errorf("exit status 1")
	err := Wrap(ErrProcess, "capture", "run", "ffmpeg exited", inner)
	if !errors.Is(err, ErrProcess) {
		t.Fatalf("expected ErrProcess marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
	if !strings.Contains(err.Error(), "capture: run: ffmpeg exited") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapNilMarkerFallsBackToInternal(t *testing.T) {
	err := Wrap(nil, "pipeline", "", "", nil)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal fallback, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrClipboard, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %v", err)
	}
}
