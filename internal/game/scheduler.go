package game

import "time"

// scheduler decides when the frame must be rebuilt: once per wall-clock
// second, and whenever a repaint is requested.
type scheduler struct {
	period  time.Duration
	current time.Time
	started bool
	repaint bool
}

func newScheduler(period time.Duration) *scheduler {
	if period <= 0 {
		period = time.Second
	}
	return &scheduler{period: period}
}

// requestRepaint forces the next due call to report a render.
func (s *scheduler) requestRepaint() { s.repaint = true }

// due reports whether now needs a new frame, and whether that is a tick
// (a new period started) rather than a plain repaint.
func (s *scheduler) due(now time.Time) (render, tick bool) {
	slot := now.Truncate(s.period)
	tick = !s.started || !slot.Equal(s.current)
	render = tick || s.repaint

	s.current = slot
	s.started = true
	s.repaint = false
	return render, tick
}
