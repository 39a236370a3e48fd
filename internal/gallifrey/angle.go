package gallifrey

import (
	"errors"
	"math"
)

const (
	// DefaultMinSeparation is the smallest angular gap, in radians, between
	// two allocated angles in one frame.
	DefaultMinSeparation = 0.5

	// DefaultMaxAttempts bounds rejection sampling per allocation.
	DefaultMaxAttempts = 1000
)

// ErrAllocationExhausted is returned with the best candidate when no angle
// satisfying the minimum separation was found within the attempt budget.
var ErrAllocationExhausted = errors.New("gallifrey: angle allocation exhausted")

// Source yields uniform floats in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// AngleAllocator picks random angles that keep clear of already used ones.
// It owns no exclusion state; callers pass the angles to avoid.
type AngleAllocator struct {
	src           Source
	minSeparation float64
	maxAttempts   int
}

// NewAngleAllocator returns an allocator drawing from src. Non-positive
// maxAttempts falls back to DefaultMaxAttempts.
func NewAngleAllocator(src Source, minSeparation float64, maxAttempts int) *AngleAllocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &AngleAllocator{
		src:           src,
		minSeparation: minSeparation,
		maxAttempts:   maxAttempts,
	}
}

// MinSeparation returns the configured angular gap.
func (a *AngleAllocator) MinSeparation() float64 { return a.minSeparation }

// Allocate returns a uniformly random angle in [0, 2π) whose circular distance
// to every angle in exclude is at least the minimum separation.
//
// When the budget runs out it returns the candidate farthest from its nearest
// excluded neighbour and ErrAllocationExhausted. The angle is always usable.
func (a *AngleAllocator) Allocate(exclude []float64) (float64, error) {
	angle := a.next()
	if len(exclude) == 0 {
		return angle, nil
	}

	best, bestGap := angle, nearest(angle, exclude)
	for attempt := 1; bestGap < a.minSeparation; attempt++ {
		if attempt >= a.maxAttempts {
			return best, ErrAllocationExhausted
		}
		angle = a.next()
		if gap := nearest(angle, exclude); gap > bestGap {
			best, bestGap = angle, gap
		}
	}
	return best, nil
}

func (a *AngleAllocator) next() float64 {
	return a.src.Float64() * 2 * math.Pi
}

// nearest returns the smallest circular distance from angle to any of others.
func nearest(angle float64, others []float64) float64 {
	gap := math.Inf(1)
	for _, o := range others {
		gap = min(gap, CircularDistance(angle, o))
	}
	return gap
}

// CircularDistance is the shorter way around the circle between a and b, in [0, π].
func CircularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	return min(d, 2*math.Pi-d)
}
