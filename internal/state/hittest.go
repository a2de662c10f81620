package state

import (
	"TouchTracker/internal/geom"
	"TouchTracker/internal/shape"
)

const (
	// DefaultHitTolerance is the distance within which a tap selects a line.
	DefaultHitTolerance = 20.0

	// hitSamples points are tested per line, at t = 0, 0.05, ..., 0.95.
	// The end point t = 1 is not sampled.
	hitSamples = 20
)

// FindLineNear returns the index of the first line, in insertion order, with
// a sample point closer than tolerance to p.
func FindLineNear(p geom.Point, lines []shape.LineSegment, tolerance float64) (int, bool) {
	for i, l := range lines {
		for s := 0; s < hitSamples; s++ {
			t := float64(s) / hitSamples
			if geom.Distance(l.At(t), p) < tolerance {
				return i, true
			}
		}
	}
	return 0, false
}
