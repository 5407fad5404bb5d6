package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gifcast/internal/config"
)

const userAgent = "gifcast/0.1.0"

// Notifier receives the pipeline's produced events. Implementations must be
// safe for use from the pipeline's control path; slow sinks should carry
// their own timeouts.
type Notifier interface {
	Started(ctx context.Context, format string) error
	Progress(ctx context.Context, percent int) error
	Completed(ctx context.Context, outputPath string) error
	Failed(ctx context.Context, err error) error
}

// NewService builds a notifier backed by ntfy when configured. When no ntfy
// topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Notifier {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return Noop{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyNotifier{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Noop discards every event.
type Noop struct{}

func (Noop) Started(context.Context, string) error   { return nil }
func (Noop) Progress(context.Context, int) error     { return nil }
func (Noop) Completed(context.Context, string) error { return nil }
func (Noop) Failed(context.Context, error) error     { return nil }

type ntfyNotifier struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyNotifier) Started(ctx context.Context, format string) error {
	return n.send(ctx, "gifcast - Recording", fmt.Sprintf("Recording %s clip started", format), "movie_camera")
}

// Progress is intentionally not pushed: ntfy is for terminal events, the UI
// collaborator renders percent updates.
func (n *ntfyNotifier) Progress(context.Context, int) error { return nil }

func (n *ntfyNotifier) Completed(ctx context.Context, outputPath string) error {
	return n.send(ctx, "gifcast - Clip Ready", fmt.Sprintf("Saved %s", outputPath), "white_check_mark")
}

func (n *ntfyNotifier) Failed(ctx context.Context, err error) error {
	message := "recording failed"
	if err != nil {
		message = err.Error()
	}
	return n.send(ctx, "gifcast - Error", message, "rotating_light")
}

func (n *ntfyNotifier) send(ctx context.Context, title, message, tags string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Title", title)
	if tags != "" {
		req.Header.Set("Tags", tags)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}
	return nil
}

// Multi fans events out to every notifier, returning the first error after
// all sinks have been attempted.
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

type multiNotifier []Notifier

func (m multiNotifier) Started(ctx context.Context, format string) error {
	return m.each(func(n Notifier) error { return n.Started(ctx, format) })
}

func (m multiNotifier) Progress(ctx context.Context, percent int) error {
	return m.each(func(n Notifier) error { return n.Progress(ctx, percent) })
}

func (m multiNotifier) Completed(ctx context.Context, outputPath string) error {
	return m.each(func(n Notifier) error { return n.Completed(ctx, outputPath) })
}

func (m multiNotifier) Failed(ctx context.Context, err error) error {
	return m.each(func(n Notifier) error { return n.Failed(ctx, err) })
}

func (m multiNotifier) each(fn func(Notifier) error) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := fn(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
