package chime

import "github.com/faiface/beep"

// gain wraps a beep.Streamer and scales every sample it passes through.
type gain struct {
	Source beep.Streamer
	factor float64
}

func newGain(src beep.Streamer, factor float64) *gain {
	return &gain{Source: src, factor: factor}
}

func (g *gain) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.Source.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= g.factor
		samples[i][1] *= g.factor
	}
	return n, ok
}

func (g *gain) Err() error { return g.Source.Err() }
