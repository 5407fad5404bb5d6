package clipboard

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gifcast/internal/logging"
	"gifcast/internal/services"
)

type fakeBackend struct {
	imageErr  map[string]error
	textErr   error
	fileErr   error
	images    []string
	texts     []string
	fileRefs  []string
	ops       []string
	lastBytes []byte
}

func (f *fakeBackend) WriteImage(_ context.Context, format string, data []byte) error {
	if err := f.imageErr[format]; err != nil {
		return err
	}
	f.images = append(f.images, format)
	f.ops = append(f.ops, "image:"+format)
	f.lastBytes = data
	return nil
}

func (f *fakeBackend) WriteText(_ context.Context, text string) error {
	if f.textErr != nil {
		return f.textErr
	}
	f.texts = append(f.texts, text)
	f.ops = append(f.ops, "text")
	return nil
}

func (f *fakeBackend) WriteFileReference(_ context.Context, path string) error {
	if f.fileErr != nil {
		return f.fileErr
	}
	f.fileRefs = append(f.fileRefs, path)
	f.ops = append(f.ops, "file-ref")
	return nil
}

func writeTestGIF(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	path := filepath.Join(dir, "capture.gif")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create gif: %v", err)
	}
	defer file.Close()
	if err := gif.EncodeAll(file, &gif.GIF{Image: []*image.Paletted{img}, Delay: []int{10}}); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return path
}

func TestPlaceNativeSucceedsFirst(t *testing.T) {
	backend := &fakeBackend{}
	writer := NewWriter(backend, nil, logging.NewNop())
	path := writeTestGIF(t, t.TempDir())

	result, err := writer.Place(context.Background(), path)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if result.Strategy != "native" || result.Degraded {
		t.Fatalf("expected native strategy, got %+v", result)
	}
	if len(backend.images) != 1 || backend.images[0] != "gif" {
		t.Fatalf("expected one gif payload, got %v", backend.images)
	}
	if len(backend.fileRefs) != 1 {
		t.Fatalf("expected best-effort file reference, got %v", backend.fileRefs)
	}
}

func TestPlaceWritesImagePayloadLast(t *testing.T) {
	backend := &fakeBackend{}
	writer := NewWriter(backend, nil, logging.NewNop())
	path := writeTestGIF(t, t.TempDir())

	if _, err := writer.Place(context.Background(), path); err != nil {
		t.Fatalf("Place: %v", err)
	}
	// Backends replace the clipboard on every write, so the image must be
	// the final payload or the file reference would wipe it.
	if len(backend.ops) == 0 {
		t.Fatal("expected clipboard writes")
	}
	if last := backend.ops[len(backend.ops)-1]; last != "image:gif" {
		t.Fatalf("image payload must be written last, got order %v", backend.ops)
	}
	if backend.ops[0] != "file-ref" {
		t.Fatalf("file reference must be written before the image, got order %v", backend.ops)
	}
}

func TestPlaceFallsBackToBitmap(t *testing.T) {
	backend := &fakeBackend{imageErr: map[string]error{"gif": errors.New("no gif support")}}
	writer := NewWriter(backend, nil, logging.NewNop())
	path := writeTestGIF(t, t.TempDir())

	result, err := writer.Place(context.Background(), path)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if result.Strategy != "bitmap" {
		t.Fatalf("expected bitmap fallback, got %+v", result)
	}
	if len(backend.lastBytes) == 0 || string(backend.lastBytes[:2]) != "BM" {
		t.Fatal("expected BMP payload bytes")
	}
}

type fakeExtractor struct {
	called bool
	fail   bool
}

func (f *fakeExtractor) Run(_ context.Context, args []string, _ func(string)) error {
	f.called = true
	if f.fail {
		return errors.New("extract failed")
	}
	framePath := args[len(args)-1]
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	file, err := os.Create(framePath)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func TestPlaceUsesFrameExtractionForUndecodableArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.gif")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	backend := &fakeBackend{imageErr: map[string]error{"gif": errors.New("no gif support")}}
	extractor := &fakeExtractor{}
	writer := NewWriter(backend, extractor, logging.NewNop())

	result, err := writer.Place(context.Background(), path)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !extractor.called {
		t.Fatal("expected frame extractor to run")
	}
	if result.Strategy != "extracted-frame" {
		t.Fatalf("expected extracted-frame strategy, got %+v", result)
	}
}

func TestPlaceDegradesToPathText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.gif")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	backend := &fakeBackend{imageErr: map[string]error{"gif": errors.New("x"), "png": errors.New("x")}}
	writer := NewWriter(backend, &fakeExtractor{fail: true}, logging.NewNop())

	result, err := writer.Place(context.Background(), path)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if !result.Degraded {
		t.Fatalf("expected degraded result, got %+v", result)
	}
	if len(backend.texts) != 1 || backend.texts[0] != path {
		t.Fatalf("expected path text payload, got %v", backend.texts)
	}
}

func TestPlaceReportsClipboardUnavailable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.gif")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	backend := &fakeBackend{
		imageErr: map[string]error{"gif": errors.New("x"), "png": errors.New("x")},
		textErr:  errors.New("no clipboard at all"),
	}
	writer := NewWriter(backend, nil, logging.NewNop())

	_, err := writer.Place(context.Background(), path)
	if err == nil {
		t.Fatal("expected error when even text fallback fails")
	}
	if !errors.Is(err, services.ErrClipboard) {
		t.Fatalf("expected ErrClipboard marker, got %v", err)
	}
}

func TestPlaceFileReferenceFailureIsNotEscalated(t *testing.T) {
	backend := &fakeBackend{fileErr: errors.New("uri-list unsupported")}
	writer := NewWriter(backend, nil, logging.NewNop())
	path := writeTestGIF(t, t.TempDir())

	result, err := writer.Place(context.Background(), path)
	if err != nil {
		t.Fatalf("file reference failure must not escalate: %v", err)
	}
	if result.Strategy != "native" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestNewCommandBackendUnsupportedOS(t *testing.T) {
	if _, err := NewCommandBackend("plan9", ""); err == nil {
		t.Fatal("expected error for unsupported OS")
	}
}
