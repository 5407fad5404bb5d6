package capture

import (
	"slices"
	"strings"
	"testing"

	"gifcast/internal/display"
)

func baseRequest() Request {
	return Request{DurationSeconds: 2, FrameRate: 15, OutputWidth: 640, Format: FormatGIF}
}

func TestCaptureArgsFullScreenWindows(t *testing.T) {
	spec, err := SpecFor("windows")
	if err != nil {
		t.Fatalf("SpecFor: %v", err)
	}
	args := CaptureArgs(spec, baseRequest(), "/tmp/temp-capture.mp4")

	joined := strings.Join(args, " ")
	for _, want := range []string{"-f gdigrab", "-framerate 15", "-t 2", "-i desktop", "-pix_fmt yuv420p"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-offset_x") {
		t.Fatalf("full screen capture should not carry offsets: %s", joined)
	}
	if args[len(args)-1] != "/tmp/temp-capture.mp4" {
		t.Fatalf("expected temp path as final arg, got %q", args[len(args)-1])
	}
}

func TestCaptureArgsRegionWindows(t *testing.T) {
	spec, _ := SpecFor("windows")
	req := baseRequest()
	req.Region = &display.PhysicalRegion{X: 150, Y: 150, Width: 452, Height: 302}
	args := CaptureArgs(spec, req, "out.mp4")

	joined := strings.Join(args, " ")
	for _, want := range []string{"-offset_x 150", "-offset_y 150", "-video_size 452x302"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args: %s", want, joined)
		}
	}
}

func TestCaptureArgsRegionLinuxUsesInputOffset(t *testing.T) {
	spec, _ := SpecFor("linux")
	req := baseRequest()
	req.Region = &display.PhysicalRegion{X: 10, Y: 20, Width: 640, Height: 480}
	args := CaptureArgs(spec, req, "out.mp4")

	if !slices.Contains(args, ":0.0+10,20") {
		t.Fatalf("expected offset appended to x11 input, got %v", args)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-video_size 640x480") {
		t.Fatalf("expected video size flag: %s", joined)
	}
}

func TestCaptureArgsRegionDarwinUsesCropFilter(t *testing.T) {
	spec, _ := SpecFor("darwin")
	req := baseRequest()
	req.Region = &display.PhysicalRegion{X: 5, Y: 6, Width: 100, Height: 80}
	args := CaptureArgs(spec, req, "out.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "crop=100:80:5:6,scale=640:-2") {
		t.Fatalf("expected crop filter before scale: %s", joined)
	}
	if strings.Contains(joined, "-offset_x") || strings.Contains(joined, "+5,6") {
		t.Fatalf("avfoundation should not use offsets: %s", joined)
	}
}

func TestSpecForUnknownOS(t *testing.T) {
	if _, err := SpecFor("plan9"); err == nil {
		t.Fatal("expected error for unsupported OS")
	}
}

func TestTranscodeStagesGIFIsTwoStagePaletteChain(t *testing.T) {
	stages := TranscodeStages(baseRequest(), "temp.mp4", "palette.png", "out.gif")
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages for gif, got %d", len(stages))
	}
	if stages[0].Name != "palettegen" || stages[1].Name != "paletteuse" {
		t.Fatalf("unexpected stage names: %q, %q", stages[0].Name, stages[1].Name)
	}

	first := strings.Join(stages[0].Args, " ")
	if !strings.Contains(first, "fps=15,scale=640:-1:flags=lanczos,palettegen") {
		t.Fatalf("unexpected palettegen filter: %s", first)
	}
	if stages[0].Args[len(stages[0].Args)-1] != "palette.png" {
		t.Fatalf("palettegen should write the palette, got %v", stages[0].Args)
	}

	second := strings.Join(stages[1].Args, " ")
	if !strings.Contains(second, "paletteuse") || !strings.Contains(second, "palette.png") {
		t.Fatalf("paletteuse stage missing palette input: %s", second)
	}
	if stages[1].Args[len(stages[1].Args)-1] != "out.gif" {
		t.Fatalf("paletteuse should write the gif, got %v", stages[1].Args)
	}
}

func TestTranscodeStagesWebMSinglePass(t *testing.T) {
	req := baseRequest()
	req.Format = FormatWebM
	stages := TranscodeStages(req, "temp.mp4", "palette.png", "out.webm")
	if len(stages) != 1 {
		t.Fatalf("expected 1 stage for webm, got %d", len(stages))
	}
	joined := strings.Join(stages[0].Args, " ")
	for _, want := range []string{"-c:v libvpx-vp9", "-crf 32", "-b:v 0"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in webm args: %s", want, joined)
		}
	}
}

func TestTranscodeStagesMP4NeedsNoStage(t *testing.T) {
	req := baseRequest()
	req.Format = FormatMP4
	if stages := TranscodeStages(req, "temp.mp4", "palette.png", "out.mp4"); stages != nil {
		t.Fatalf("native container should transcode via rename, got %v", stages)
	}
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{"valid", func(r *Request) {}, false},
		{"zero duration", func(r *Request) { r.DurationSeconds = 0 }, true},
		{"fps too low", func(r *Request) { r.FrameRate = 5 }, true},
		{"fps too high", func(r *Request) { r.FrameRate = 61 }, true},
		{"width too small", func(r *Request) { r.OutputWidth = 100 }, true},
		{"width too large", func(r *Request) { r.OutputWidth = 4000 }, true},
		{"bad format", func(r *Request) { r.Format = "avi" }, true},
		{"odd region", func(r *Request) {
			r.Region = &display.PhysicalRegion{Width: 301, Height: 200}
		}, true},
		{"even region", func(r *Request) {
			r.Region = &display.PhysicalRegion{Width: 300, Height: 200}
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			err := req.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestExtractFrameArgs(t *testing.T) {
	args := ExtractFrameArgs("capture.gif", "frame.png")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-frames:v 1") {
		t.Fatalf("expected single frame extraction: %s", joined)
	}
	if args[len(args)-1] != "frame.png" {
		t.Fatalf("expected frame path last, got %v", args)
	}
}
