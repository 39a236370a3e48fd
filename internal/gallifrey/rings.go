package gallifrey

import (
	"errors"
	"fmt"
)

// RingCount is the number of concentric rings on the clock face.
const RingCount = 7

// DigitCount is the number of digits in an HH:MM:SS stamp.
const DigitCount = RingCount - 1

var (
	ErrRingCount = errors.New("gallifrey: need exactly 7 ring radii")
	ErrRingOrder = errors.New("gallifrey: ring radii must be positive and strictly decreasing")
	ErrRingRange = errors.New("gallifrey: ring index out of range")
)

// Rings holds the radii of the seven rings, outermost first.
type Rings []float64

// DefaultRings returns the reference radii.
func DefaultRings() Rings {
	return Rings{200, 180, 155, 135, 110, 90, 65}
}

// Validate checks the ring count and that radii shrink toward the center.
func (r Rings) Validate() error {
	if len(r) != RingCount {
		return fmt.Errorf("%w: got %d", ErrRingCount, len(r))
	}
	for i, radius := range r {
		if radius <= 0 {
			return fmt.Errorf("%w: ring %d has radius %v", ErrRingOrder, i, radius)
		}
		if i > 0 && radius >= r[i-1] {
			return fmt.Errorf("%w: ring %d (%v) >= ring %d (%v)", ErrRingOrder, i, radius, i-1, r[i-1])
		}
	}
	return nil
}

// Radius returns the radius of ring i.
func (r Rings) Radius(i int) float64 {
	return r[i]
}

// StrokeWidth returns the pen width used for the background stroke of ring i.
// Even rings between the first and last are thicker, the innermost even ring thickest.
func StrokeWidth(i int) float64 {
	last := RingCount - 1
	switch {
	case i%2 == 0 && i != 0 && i != last:
		return 4
	case i%2 == 0 && i == last:
		return 8
	default:
		return 2
	}
}
