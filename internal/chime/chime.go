// Package chime plays a short click for every second the clock draws.
package chime

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/gallifreyan-clock/internal/config"
)

// SampleRate is used for the synthesized click.
const SampleRate = beep.SampleRate(44100)

var ErrUnsupported = errors.New("chime: unsupported audio file")

// Chime holds a decoded clip and plays it on demand.
type Chime struct {
	logger *log.Logger
	format beep.Format
	clip   *beep.Buffer

	mu       sync.Mutex
	initDone bool
	muted    bool
}

// New prepares the clip described by cfg: the configured file when set,
// otherwise a synthesized decaying tone.
func New(cfg config.ChimeConfig, logger *log.Logger) (*Chime, error) {
	c := &Chime{logger: logger, muted: !cfg.Enabled}

	var (
		streamer beep.Streamer
		format   beep.Format
	)
	if cfg.File != "" {
		s, f, err := decode(cfg.File)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		streamer, format = s, f
	} else {
		format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
		streamer = Tone(SampleRate, cfg.Frequency, config.ChimeDuration)
	}

	c.format = format
	c.clip = beep.NewBuffer(format)
	c.clip.Append(newGain(streamer, cfg.Volume))
	return c, nil
}

// decode opens path and picks a decoder by extension.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open chime: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Len returns the clip length in samples.
func (c *Chime) Len() int { return c.clip.Len() }

// Format returns the clip format.
func (c *Chime) Format() beep.Format { return c.format }

// Init opens the speaker at the clip's sample rate. Failure leaves the chime silent.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initDone {
		return nil
	}
	bufferSize := c.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(c.format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	c.initDone = true
	return nil
}

// Ring plays the clip once unless muted or the speaker is not open.
func (c *Chime) Ring() {
	c.mu.Lock()
	play := c.initDone && !c.muted
	c.mu.Unlock()
	if !play {
		return
	}
	speaker.Play(c.clip.Streamer(0, c.clip.Len()))
}

// Toggle flips the mute state and reports whether the chime is now audible.
func (c *Chime) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	if c.logger != nil {
		c.logger.Debug("chime toggled", "muted", c.muted)
	}
	return !c.muted
}

// Muted reports whether Ring is silenced.
func (c *Chime) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Tone returns a sine at freq Hz fading linearly to silence over d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			env := 1 - float64(pos)/float64(n)
			v := env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}
