package capture

import (
	"fmt"
	"strconv"
)

// Stage is one transcode subprocess invocation. Stages run in order; a
// failed stage short-circuits the rest of the chain.
type Stage struct {
	Name string
	Args []string
}

// CaptureArgs builds the ffmpeg argument list for the capture phase. The
// recording lands in tempPath as the native container. Only argument
// construction happens here; nothing is executed.
func CaptureArgs(spec PlatformSpec, req Request, tempPath string) []string {
	args := []string{
		"-y",
		"-f", spec.API,
		"-framerate", strconv.Itoa(req.FrameRate),
	}

	input := spec.Input
	if req.Region != nil {
		size := fmt.Sprintf("%dx%d", req.Region.Width, req.Region.Height)
		switch spec.RegionStyle {
		case RegionFlags:
			args = append(args,
				"-offset_x", strconv.Itoa(req.Region.X),
				"-offset_y", strconv.Itoa(req.Region.Y),
				"-video_size", size,
			)
		case RegionInput:
			args = append(args, "-video_size", size)
			input = fmt.Sprintf("%s+%d,%d", spec.Input, req.Region.X, req.Region.Y)
		case RegionFilter:
			// Handled below as a crop filter after the input.
		}
	}

	args = append(args,
		"-t", strconv.Itoa(req.DurationSeconds),
		"-i", input,
	)

	filters := ""
	if req.Region != nil && spec.RegionStyle == RegionFilter {
		filters = fmt.Sprintf("crop=%d:%d:%d:%d,", req.Region.Width, req.Region.Height, req.Region.X, req.Region.Y)
	}
	// scale to the requested width; -2 keeps the height even for yuv420p.
	filters += fmt.Sprintf("scale=%d:-2", req.OutputWidth)

	args = append(args,
		"-vf", filters,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		tempPath,
	)
	return args
}

// TranscodeStages builds the ordered subprocess chain that converts the
// native container in tempPath into outputPath. GIF is a two-stage palette
// chain; WebM is a single VP9 pass; native formats need no stage at all
// (finalization is a file move).
func TranscodeStages(req Request, tempPath, palettePath, outputPath string) []Stage {
	switch req.Format {
	case FormatGIF:
		chain := fmt.Sprintf("fps=%d,scale=%d:-1:flags=lanczos", req.FrameRate, req.OutputWidth)
		return []Stage{
			{
				Name: "palettegen",
				Args: []string{
					"-y",
					"-i", tempPath,
					"-vf", chain + ",palettegen",
					palettePath,
				},
			},
			{
				Name: "paletteuse",
				Args: []string{
					"-y",
					"-i", tempPath,
					"-i", palettePath,
					"-filter_complex", chain + "[x];[x][1:v]paletteuse",
					outputPath,
				},
			},
		}
	case FormatWebM:
		return []Stage{
			{
				Name: "vp9",
				Args: []string{
					"-y",
					"-i", tempPath,
					"-c:v", "libvpx-vp9",
					"-crf", "32",
					"-b:v", "0",
					outputPath,
				},
			},
		}
	default:
		return nil
	}
}

// ExtractFrameArgs builds the argument list that pulls a single
// representative frame out of an artifact, used as the last-resort clipboard
// strategy.
func ExtractFrameArgs(inputPath, framePath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-frames:v", "1",
		framePath,
	}
}
