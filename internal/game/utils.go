package game

import (
	"image/color"
	"time"
)

var (
	paper = color.White
	ink   = color.Black
)

func f32(v float64) float32 { return float32(v) }

// snapshotName suggests a file name for the frame drawn at t.
func snapshotName(t time.Time) string {
	return "gallifreyan-" + t.Format("150405") + ".png"
}
