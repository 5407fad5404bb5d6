package ffmpeg

import (
	"regexp"
	"strconv"
	"time"
)

var timeMarker = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2})\.(\d+)`)

// keepTail must cover one complete time marker so a marker split across two
// chunks still matches after the next feed.
const keepTail = 64

// ProgressParser derives an encode position ratio from accumulated
// diagnostic text. ffmpeg emits "time=HH:MM:SS.ff" markers mid-line and
// chunks arrive at arbitrary boundaries, so the parser keeps a rolling
// buffer and re-scans it on every feed instead of matching chunk-by-chunk.
//
// The emitted ratio is clamped to [0,1] and never decreases.
type ProgressParser struct {
	total   time.Duration
	onRatio func(float64)
	buf     []byte
	last    float64
}

// NewProgressParser builds a parser for a phase whose expected duration is
// total. onRatio receives strictly increasing values in (0,1].
func NewProgressParser(total time.Duration, onRatio func(float64)) *ProgressParser {
	return &ProgressParser{total: total, onRatio: onRatio, last: -1}
}

// Feed appends a decoded output chunk and emits a new ratio when one of the
// markers in the buffer advances past the previous position.
func (p *ProgressParser) Feed(chunk string) {
	if p.total <= 0 {
		return
	}
	p.buf = append(p.buf, chunk...)

	// Parse before trimming: the submatch slices alias p.buf, so the marker
	// bytes must be consumed before the tail copy overwrites them.
	matches := timeMarker.FindAllSubmatch(p.buf, -1)
	var elapsed time.Duration
	ok := false
	if len(matches) > 0 {
		elapsed, ok = parseMarker(matches[len(matches)-1])
	}
	if len(p.buf) > keepTail {
		p.buf = append(p.buf[:0], p.buf[len(p.buf)-keepTail:]...)
	}
	if !ok {
		return
	}
	ratio := elapsed.Seconds() / p.total.Seconds()
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	if ratio <= p.last {
		return
	}
	p.last = ratio
	if p.onRatio != nil {
		p.onRatio(ratio)
	}
}

func parseMarker(match [][]byte) (time.Duration, bool) {
	hours, err1 := strconv.Atoi(string(match[1]))
	minutes, err2 := strconv.Atoi(string(match[2]))
	seconds, err3 := strconv.Atoi(string(match[3]))
	fraction, err4 := strconv.ParseFloat("0."+string(match[4]), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, false
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(fraction*float64(time.Second))
	return total, true
}
