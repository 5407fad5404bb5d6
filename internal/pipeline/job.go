package pipeline

import (
	"time"

	"github.com/google/uuid"

	"gifcast/internal/capture"
)

// Phase is the lifecycle position of the in-flight job.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseCapturing    Phase = "capturing"
	PhaseFinalizing   Phase = "finalizing"
	PhaseTranscoding  Phase = "transcoding"
	PhaseClipboarding Phase = "clipboarding"
	PhaseDone         Phase = "done"
	PhaseFailed       Phase = "failed"
	PhaseCancelled    Phase = "cancelled"
)

// Job is the single in-flight unit of work. At most one job is non-idle at a
// time; the pipeline's start guard enforces it. The job owns tempPath for
// its whole lifetime: the file is renamed on native-format success and
// deleted on every other terminal transition.
type Job struct {
	ID        string
	Request   capture.Request
	Phase     Phase
	StartedAt time.Time

	tempPath    string
	palettePath string
	outputPath  string
	progress    int
}

func newJob(req capture.Request) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Request:   req,
		Phase:     PhaseCapturing,
		StartedAt: time.Now().UTC(),
	}
}
