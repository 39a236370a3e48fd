package chime

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/gallifreyan-clock/internal/config"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestToneLength(t *testing.T) {
	d := 10 * time.Millisecond
	samples := drain(Tone(SampleRate, 440, d))
	if want := SampleRate.N(d); len(samples) != want {
		t.Fatalf("got %d samples, want %d", len(samples), want)
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v", i, s)
		}
	}
}

func TestGainScales(t *testing.T) {
	samples := drain(newGain(Tone(SampleRate, 440, 5*time.Millisecond), 0.5))
	ref := drain(Tone(SampleRate, 440, 5*time.Millisecond))
	for i := range ref {
		if math.Abs(samples[i][0]-ref[i][0]*0.5) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, samples[i][0], ref[i][0]*0.5)
		}
	}
}

func TestNewSynthesized(t *testing.T) {
	c, err := New(config.ChimeConfig{Volume: 0.3, Frequency: 880}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if want := SampleRate.N(config.ChimeDuration); c.Len() != want {
		t.Errorf("Len() = %d, want %d", c.Len(), want)
	}
	if !c.Muted() {
		t.Error("disabled chime should start muted")
	}
	if !c.Toggle() || c.Muted() {
		t.Error("Toggle() did not unmute")
	}
	// Without Init the speaker is closed; Ring must be a no-op.
	c.Ring()
}

func TestNewFromWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tick.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Tone(22050, 660, 20*time.Millisecond), format); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c, err := New(config.ChimeConfig{Enabled: true, File: path, Volume: 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Format().SampleRate != 22050 {
		t.Errorf("sample rate = %v, want 22050", c.Format().SampleRate)
	}
	if want := beep.SampleRate(22050).N(20 * time.Millisecond); c.Len() != want {
		t.Errorf("Len() = %d, want %d", c.Len(), want)
	}
	if c.Muted() {
		t.Error("enabled chime starts muted")
	}
}

func TestNewUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tick.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(config.ChimeConfig{File: path}, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("New() error = %v, want ErrUnsupported", err)
	}
}
