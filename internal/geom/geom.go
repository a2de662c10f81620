// Package geom provides the 2D point and vector math used by the engine.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position on the drawing surface.
type Point = r2.Vec

// Vec is a displacement or velocity.
type Vec = r2.Vec

// Pt creates a new Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Lerp(a, b, 0.5)
}

// Lerp interpolates between a (t=0) and b (t=1).
func Lerp(a, b Point, t float64) Point {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Add translates p by v.
func Add(p Point, v Vec) Point {
	return r2.Add(p, v)
}

// Sub returns the vector from b to a.
func Sub(a, b Point) Vec {
	return r2.Sub(a, b)
}

// Hypot returns the length of v.
func Hypot(v Vec) float64 {
	return r2.Norm(v)
}

// Angle returns the direction of v in (-π, π]. The zero vector has angle 0.
func Angle(v Vec) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// NormalizedAngle returns the direction of v in [0, 2π).
func NormalizedAngle(v Vec) float64 {
	a := Angle(v)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
