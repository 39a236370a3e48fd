package gallifrey

import "math"

// Point is a position on the render surface.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointOnCircle returns the point at angle (radians) on the circle around center.
// Coordinates are truncated toward zero to whole pixels.
func PointOnCircle(center Point, radius, angle float64) Point {
	return Point{
		X: math.Trunc(center.X + math.Cos(angle)*radius),
		Y: math.Trunc(center.Y + math.Sin(angle)*radius),
	}
}

// ScaleTowardCenter moves p along the ray from center so that a point at
// fromRadius ends up at toRadius. The angle of p is preserved.
func ScaleTowardCenter(center, p Point, fromRadius, toRadius float64) Point {
	return ScaleBy(center, p, toRadius/fromRadius)
}

// ScaleBy returns center + (p - center) * ratio.
func ScaleBy(center, p Point, ratio float64) Point {
	return center.add(p.sub(center).scale(ratio))
}
