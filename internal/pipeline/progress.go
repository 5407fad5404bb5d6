package pipeline

// progressScaler maps phase-local completion ratios onto the job's single
// 0-100 signal: the capture phase owns [0,50], the transcode chain [50,100].
// Emissions are integer percents and strictly increasing across the whole
// job, so observers never see progress move backwards.
type progressScaler struct {
	last int
	emit func(int)
}

func newProgressScaler(emit func(int)) *progressScaler {
	return &progressScaler{last: -1, emit: emit}
}

// phase returns a ratio callback that scales [0,1] into [low,high].
func (s *progressScaler) phase(low, high int) func(float64) {
	return func(ratio float64) {
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		s.set(low + int(ratio*float64(high-low)))
	}
}

// set emits percent when it advances past everything emitted so far.
func (s *progressScaler) set(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= s.last {
		return
	}
	s.last = percent
	if s.emit != nil {
		s.emit(percent)
	}
}

// stageRange splits the transcode half into equal subranges for multi-stage
// chains (the GIF palette chain runs two passes).
func stageRange(index, count int) (int, int) {
	const low, high = 50, 100
	span := high - low
	start := low + span*index/count
	end := low + span*(index+1)/count
	return start, end
}
