package clipboard

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"

	"gifcast/internal/capture"
	"gifcast/internal/logging"
	"gifcast/internal/services"
)

// FrameExtractor runs the external encoder to pull a still frame out of an
// artifact; the ffmpeg runner satisfies it.
type FrameExtractor interface {
	Run(ctx context.Context, args []string, onOutput func(string)) error
}

// Result reports how clipboard placement ended.
type Result struct {
	// Strategy names the approach that succeeded.
	Strategy string
	// Degraded is true when the clipboard holds the artifact's path as text
	// rather than pixel data.
	Degraded bool
}

// Writer places a finished artifact on the system clipboard. Strategies are
// attempted in a fixed order from most faithful (native animated bytes) to
// least (a single extracted frame); when every image strategy fails the path
// is copied as text and the result is reported as degraded rather than as a
// failure.
type Writer struct {
	backend   Backend
	extractor FrameExtractor
	logger    *slog.Logger
}

// NewWriter builds a writer over the given backend. extractor may be nil,
// which disables the frame-extraction strategy.
func NewWriter(backend Backend, extractor FrameExtractor, logger *slog.Logger) *Writer {
	return &Writer{
		backend:   backend,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "clipboard"),
	}
}

type strategy struct {
	name  string
	write func(ctx context.Context, artifactPath string) error
}

func (w *Writer) strategies() []strategy {
	list := []strategy{
		{name: "native", write: w.writeNative},
		{name: "bitmap", write: w.writeDecodedBitmap},
		{name: "reread-bitmap", write: w.writeRereadBitmap},
	}
	if w.extractor != nil {
		list = append(list, strategy{name: "extracted-frame", write: w.writeExtractedFrame})
	}
	return list
}

// Place attempts the strategy chain for artifactPath. It returns
// services.ErrClipboard only when even the text fallback fails.
//
// The file-reference payload goes in first: the platform tools replace the
// clipboard rather than append to it, so whatever is written last wins and
// the image payload must win.
func (w *Writer) Place(ctx context.Context, artifactPath string) (Result, error) {
	w.writeFileReference(ctx, artifactPath)

	for _, s := range w.strategies() {
		err := s.write(ctx, artifactPath)
		if err == nil {
			w.logger.Debug("clipboard strategy succeeded", logging.String("strategy", s.name))
			return Result{Strategy: s.name}, nil
		}
		w.logger.Debug("clipboard strategy failed",
			logging.String("strategy", s.name),
			logging.Error(err),
		)
	}

	if err := w.backend.WriteText(ctx, artifactPath); err != nil {
		return Result{}, services.Wrap(services.ErrClipboard, "clipboard", "place", "all strategies failed", err)
	}
	w.logger.Warn("clipboard holds file path only",
		logging.String("path", artifactPath),
	)
	return Result{Strategy: "path-text", Degraded: true}, nil
}

// Native bytes preserve animation; a bitmap conversion would flatten a GIF
// to its first frame.
func (w *Writer) writeNative(ctx context.Context, artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}
	return w.backend.WriteImage(ctx, formatOf(artifactPath), data)
}

func (w *Writer) writeDecodedBitmap(ctx context.Context, artifactPath string) error {
	img, err := imaging.Open(artifactPath)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return err
	}
	return w.backend.WriteImage(ctx, "bmp", buf.Bytes())
}

func (w *Writer) writeRereadBitmap(ctx context.Context, artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return err
	}
	return w.backend.WriteImage(ctx, "bmp", buf.Bytes())
}

func (w *Writer) writeExtractedFrame(ctx context.Context, artifactPath string) error {
	framePath := filepath.Join(filepath.Dir(artifactPath), "frame-"+filepath.Base(artifactPath)+".png")
	defer os.Remove(framePath)

	if err := w.extractor.Run(ctx, capture.ExtractFrameArgs(artifactPath, framePath), nil); err != nil {
		return err
	}
	data, err := os.ReadFile(framePath)
	if err != nil {
		return err
	}
	return w.backend.WriteImage(ctx, "png", data)
}

// The file-reference payload is best effort: file-paste targets benefit from
// it when no image strategy lands, nothing depends on it.
func (w *Writer) writeFileReference(ctx context.Context, artifactPath string) {
	if err := w.backend.WriteFileReference(ctx, artifactPath); err != nil {
		w.logger.Debug("file reference payload failed", logging.Error(err))
	}
}

func formatOf(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "png"
	}
	return ext
}
