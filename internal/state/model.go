package state

import (
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/shape"
)

// Snapshot is the read-only view a renderer draws each frame.
type Snapshot struct {
	FinishedLines   []shape.LineSegment
	FinishedCircles []shape.Circle
	InProgress      map[pointer.ID]shape.LineSegment
	CurrentCircle   *shape.Circle
	Selected        int
	Thickness       float64
	Mode            pointer.Mode
}

// SelectedLine returns the selected finished line.
func (s Snapshot) SelectedLine() (shape.LineSegment, bool) {
	if s.Selected < 0 || s.Selected >= len(s.FinishedLines) {
		return shape.LineSegment{}, false
	}
	return s.FinishedLines[s.Selected], true
}

// Empty reports whether there is nothing to draw.
func (s Snapshot) Empty() bool {
	return len(s.FinishedLines) == 0 && len(s.FinishedCircles) == 0 &&
		len(s.InProgress) == 0 && s.CurrentCircle == nil
}
