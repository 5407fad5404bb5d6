package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"gifcast/internal/capture"
	"gifcast/internal/clipboard"
	"gifcast/internal/config"
	"gifcast/internal/deps"
	"gifcast/internal/display"
	"gifcast/internal/ffmpeg"
	"gifcast/internal/fileutil"
	"gifcast/internal/history"
	"gifcast/internal/logging"
	"gifcast/internal/notify"
	"gifcast/internal/services"
)

// ErrNotRecording is returned by Cancel when no job is in flight.
var ErrNotRecording = errors.New("no recording in progress")

// Runner abstracts the encoder subprocess supervisor so tests can substitute
// a fake; *ffmpeg.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, args []string, onOutput func(string)) error
}

// ClipboardPlacer abstracts the artifact clipboard writer.
type ClipboardPlacer interface {
	Place(ctx context.Context, artifactPath string) (clipboard.Result, error)
}

// Recorder abstracts the history store.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Outcome summarizes a finished recording.
type Outcome struct {
	JobID      string
	OutputPath string
	// Clipboard is nil when clipboard placement was skipped.
	Clipboard *clipboard.Result
}

// Pipeline drives one recording at a time through capture, finalization,
// transcoding, and clipboard placement. A second start while a job is in
// flight fails with services.ErrAlreadyRunning; cancellation terminates the
// encoder gracefully and cleans up the temp recording.
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	runner   Runner
	clip     ClipboardPlacer
	notifier notify.Notifier
	recorder Recorder
	locate   func(binary string) deps.Status
	platform capture.PlatformSpec
	lock     *flock.Flock
	now      func() time.Time

	mu     sync.Mutex
	job    *Job
	cancel context.CancelFunc
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithRunner substitutes the encoder runner.
func WithRunner(runner Runner) Option {
	return func(p *Pipeline) { p.runner = runner }
}

// WithClipboard sets the clipboard writer. Nil disables placement.
func WithClipboard(clip ClipboardPlacer) Option {
	return func(p *Pipeline) { p.clip = clip }
}

// WithNotifier sets the event sink.
func WithNotifier(notifier notify.Notifier) Option {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// WithHistory sets the job history recorder. Nil disables recording.
func WithHistory(recorder Recorder) Option {
	return func(p *Pipeline) { p.recorder = recorder }
}

// WithLocator substitutes the encoder availability check.
func WithLocator(locate func(binary string) deps.Status) Option {
	return func(p *Pipeline) {
		if locate != nil {
			p.locate = locate
		}
	}
}

// WithPlatformSpec overrides the capture descriptor for the host OS.
func WithPlatformSpec(spec capture.PlatformSpec) Option {
	return func(p *Pipeline) { p.platform = spec }
}

// WithClock substitutes the time source used for artifact names.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New builds a pipeline for the host platform. The capture descriptor can be
// overridden for tests or cross-platform argument inspection.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	spec, specErr := capture.SpecFor(runtime.GOOS)

	p := &Pipeline{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		notifier: notify.Noop{},
		locate:   deps.ResolveEncoder,
		platform: spec,
		now:      time.Now,
		lock:     flock.New(filepath.Join(cfg.Paths.LogDir, "gifcast.lock")),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runner == nil {
		p.runner = ffmpeg.NewRunner(logger, ffmpeg.WithBinary(cfg.Encoder.Binary))
	}
	if p.platform.API == "" {
		return nil, specErr
	}
	return p, nil
}

// DefaultRequest builds a request from the configured capture defaults.
func (p *Pipeline) DefaultRequest() capture.Request {
	return capture.Request{
		DurationSeconds: p.cfg.Capture.DurationSeconds,
		FrameRate:       p.cfg.Capture.FrameRate,
		OutputWidth:     p.cfg.Capture.OutputWidth,
		Format:          capture.Format(p.cfg.Capture.Format),
	}
}

// StartCapture runs a full-screen (or pre-resolved region) recording to
// completion. It blocks until the job reaches a terminal phase.
func (p *Pipeline) StartCapture(ctx context.Context, req capture.Request) (Outcome, error) {
	return p.run(ctx, req)
}

// StartRegionCapture maps a logical selection rectangle to physical pixels
// using the configured display scale and records that region.
func (p *Pipeline) StartRegionCapture(ctx context.Context, rect display.Rect, req capture.Request) (Outcome, error) {
	region := display.Physical(rect, p.cfg.Capture.DisplayScale)
	req.Region = &region
	return p.run(ctx, req)
}

// Cancel requests graceful termination of the in-flight job. The blocked
// StartCapture call observes the cancellation and performs cleanup; Cancel
// itself returns immediately.
func (p *Pipeline) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.job == nil || p.cancel == nil {
		return ErrNotRecording
	}
	p.logger.Info("cancelling recording", logging.String("job_id", p.job.ID))
	p.cancel()
	return nil
}

// Status reports the current phase and progress percent. Idle when no job is
// in flight.
func (p *Pipeline) Status() (Phase, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.job == nil {
		return PhaseIdle, 0
	}
	return p.job.Phase, p.job.progress
}

func (p *Pipeline) run(ctx context.Context, req capture.Request) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, services.Wrap(services.ErrInternal, "pipeline", "validate request", "", err)
	}

	// The encoder gate runs before any temp file or job state exists, so a
	// missing binary leaves nothing behind.
	status := p.locate(p.cfg.Encoder.Binary)
	if !status.Available {
		return Outcome{}, services.Wrap(services.ErrEncoderUnavailable, "pipeline", "resolve encoder", status.Detail, nil)
	}

	if err := p.cfg.EnsureDirectories(); err != nil {
		return Outcome{}, services.Wrap(services.ErrInternal, "pipeline", "ensure directories", "", err)
	}

	job, jobCtx, err := p.begin(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	defer p.end()

	outcome, runErr := p.execute(jobCtx, job)
	p.record(ctx, job, runErr)
	return outcome, runErr
}

// begin installs the job as the single in-flight recording. Both the
// in-process guard and the cross-process file lock must be acquired.
func (p *Pipeline) begin(ctx context.Context, req capture.Request) (*Job, context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.job != nil {
		return nil, nil, services.Wrap(services.ErrAlreadyRunning, "pipeline", "start", "a recording is already in flight", nil)
	}
	if p.lock != nil {
		locked, err := p.lock.TryLock()
		if err != nil {
			return nil, nil, services.Wrap(services.ErrInternal, "pipeline", "acquire lock", p.lock.Path(), err)
		}
		if !locked {
			return nil, nil, services.Wrap(services.ErrAlreadyRunning, "pipeline", "start", "another gifcast process is recording", nil)
		}
	}

	job := newJob(req)
	jobCtx, cancel := context.WithCancel(ctx)
	p.job = job
	p.cancel = cancel
	return job, jobCtx, nil
}

func (p *Pipeline) end() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.lock != nil {
		if err := p.lock.Unlock(); err != nil {
			p.logger.Warn("release recording lock", logging.Error(err))
		}
	}
	p.job = nil
}

func (p *Pipeline) execute(ctx context.Context, job *Job) (outcome Outcome, err error) {
	// A panic anywhere in the job (a notifier sink, a clipboard backend, a
	// parser) must not take the host process down. Registered before the
	// cleanup defer so the temp files are removed before conversion.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("recovered from panic", logging.String("job_id", job.ID), logging.Any("panic", r))
			p.setPhase(job, PhaseFailed)
			outcome = Outcome{}
			err = services.Wrap(services.ErrInternal, "pipeline", "run", fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	paths := pathsFor(p.cfg.Paths.OutputDir, job.Request.Format, p.now())
	job.tempPath = paths.temp
	job.palettePath = paths.palette
	job.outputPath = paths.output

	// The temp recording is deleted on every terminal path; native-format
	// success renames it first, which makes the removal a no-op.
	defer func() {
		if err := fileutil.RemoveIfExists(job.tempPath); err != nil {
			p.logger.Warn("remove temp recording", logging.String("path", job.tempPath), logging.Error(err))
		}
		if err := fileutil.RemoveIfExists(job.palettePath); err != nil {
			p.logger.Warn("remove palette", logging.String("path", job.palettePath), logging.Error(err))
		}
	}()

	scaler := newProgressScaler(func(percent int) {
		p.setProgress(job, percent)
	})

	p.logger.Info("recording started",
		logging.String("job_id", job.ID),
		logging.String("format", string(job.Request.Format)),
		logging.Int("duration_s", job.Request.DurationSeconds),
		logging.Bool("region", job.Request.Region != nil),
	)
	p.notifyStarted(ctx, job)

	if err := p.settle(ctx, p.cfg.Capture.SettleDelayMS); err != nil {
		return Outcome{}, p.fail(ctx, job, err)
	}

	if err := p.capturePhase(ctx, job, scaler); err != nil {
		return Outcome{}, p.fail(ctx, job, err)
	}
	scaler.set(50)

	if err := p.finalizePhase(ctx, job, scaler); err != nil {
		return Outcome{}, p.fail(ctx, job, err)
	}

	clipResult := p.clipboardPhase(ctx, job)

	scaler.set(100)
	p.setPhase(job, PhaseDone)
	p.logger.Info("recording complete",
		logging.String("job_id", job.ID),
		logging.String("output", job.outputPath),
	)
	p.notifyCompleted(ctx, job)

	return Outcome{JobID: job.ID, OutputPath: job.outputPath, Clipboard: clipResult}, nil
}

func (p *Pipeline) capturePhase(ctx context.Context, job *Job, scaler *progressScaler) error {
	p.setPhase(job, PhaseCapturing)
	total := time.Duration(job.Request.DurationSeconds) * time.Second
	parser := ffmpeg.NewProgressParser(total, scaler.phase(0, 50))
	args := capture.CaptureArgs(p.platform, job.Request, job.tempPath)
	if err := p.runner.Run(ctx, args, parser.Feed); err != nil {
		return fmt.Errorf("%s phase: %w", PhaseCapturing, err)
	}
	return nil
}

func (p *Pipeline) finalizePhase(ctx context.Context, job *Job, scaler *progressScaler) error {
	if job.Request.Format.Native() {
		p.setPhase(job, PhaseFinalizing)
		if err := fileutil.MoveFile(job.tempPath, job.outputPath); err != nil {
			return services.Wrap(services.ErrInternal, "pipeline", "finalize", "move recording", err)
		}
		return nil
	}

	p.setPhase(job, PhaseTranscoding)
	stages := capture.TranscodeStages(job.Request, job.tempPath, job.palettePath, job.outputPath)
	total := time.Duration(job.Request.DurationSeconds) * time.Second
	for i, stage := range stages {
		low, high := stageRange(i, len(stages))
		parser := ffmpeg.NewProgressParser(total, scaler.phase(low, high))
		p.logger.Debug("transcode stage",
			logging.String("job_id", job.ID),
			logging.String("stage", stage.Name),
		)
		if err := p.runner.Run(ctx, stage.Args, parser.Feed); err != nil {
			return fmt.Errorf("%s stage %s: %w", PhaseTranscoding, stage.Name, err)
		}
		scaler.set(high)
	}
	return nil
}

// clipboardPhase is best effort: placement failures degrade the outcome but
// never fail a job whose artifact already exists on disk.
func (p *Pipeline) clipboardPhase(ctx context.Context, job *Job) *clipboard.Result {
	if p.clip == nil || !p.cfg.Clipboard.Enabled {
		return nil
	}
	if job.Request.Format != capture.FormatGIF {
		return nil
	}

	p.setPhase(job, PhaseClipboarding)
	if err := p.settle(ctx, p.cfg.Clipboard.SettleDelayMS); err != nil {
		return nil
	}
	result, err := p.clip.Place(ctx, job.outputPath)
	if err != nil {
		p.logger.Warn("clipboard placement failed", logging.String("job_id", job.ID), logging.Error(err))
		return nil
	}
	if result.Degraded {
		p.logger.Warn("clipboard degraded to path copy", logging.String("job_id", job.ID))
	}
	return &result
}

// fail resolves the terminal phase for a non-success exit: a job whose
// context was cancelled ended by user request, everything else failed.
func (p *Pipeline) fail(ctx context.Context, job *Job, err error) error {
	// A stage that died mid-write can leave a partial artifact.
	if removeErr := fileutil.RemoveIfExists(job.outputPath); removeErr != nil {
		p.logger.Warn("remove partial artifact", logging.String("path", job.outputPath), logging.Error(removeErr))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		p.setPhase(job, PhaseCancelled)
		p.logger.Info("recording cancelled", logging.String("job_id", job.ID))
		return context.Canceled
	}
	p.setPhase(job, PhaseFailed)
	p.logger.Error("recording failed", logging.String("job_id", job.ID), logging.Error(err))
	p.notifyFailed(ctx, err)
	return err
}

// settle waits briefly so the desktop can hide transient UI (the trigger
// menu, the selection overlay) before capture or clipboard access.
func (p *Pipeline) settle(ctx context.Context, delayMS int) error {
	if delayMS <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(delayMS) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pipeline) setPhase(job *Job, phase Phase) {
	p.mu.Lock()
	job.Phase = phase
	p.mu.Unlock()
}

func (p *Pipeline) setProgress(job *Job, percent int) {
	p.mu.Lock()
	job.progress = percent
	p.mu.Unlock()
	if err := p.notifier.Progress(context.Background(), percent); err != nil {
		p.logger.Debug("progress notification failed", logging.Error(err))
	}
}

// Terminal notifications and history writes use a detached context so a
// cancelled job still reports how it ended.

func (p *Pipeline) notifyStarted(ctx context.Context, job *Job) {
	if err := p.notifier.Started(ctx, string(job.Request.Format)); err != nil {
		p.logger.Warn("start notification failed", logging.Error(err))
	}
}

func (p *Pipeline) notifyCompleted(ctx context.Context, job *Job) {
	if err := p.notifier.Completed(context.WithoutCancel(ctx), job.outputPath); err != nil {
		p.logger.Warn("completion notification failed", logging.Error(err))
	}
}

func (p *Pipeline) notifyFailed(ctx context.Context, cause error) {
	if err := p.notifier.Failed(context.WithoutCancel(ctx), cause); err != nil {
		p.logger.Warn("failure notification failed", logging.Error(err))
	}
}

func (p *Pipeline) record(ctx context.Context, job *Job, runErr error) {
	if p.recorder == nil {
		return
	}
	entry := history.Entry{
		ID:              job.ID,
		CreatedAt:       job.StartedAt,
		Format:          string(job.Request.Format),
		DurationSeconds: job.Request.DurationSeconds,
		FrameRate:       job.Request.FrameRate,
		OutputWidth:     job.Request.OutputWidth,
		HasRegion:       job.Request.Region != nil,
		Phase:           string(job.Phase),
	}
	if runErr != nil {
		entry.ErrorMessage = runErr.Error()
	} else {
		entry.OutputPath = job.outputPath
	}
	if err := p.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		p.logger.Warn("record history entry", logging.Error(err))
	}
}
