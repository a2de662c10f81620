package state

import "sync/atomic"

// Generation counts structural changes to the finished line sequence.
// Handles taken under an older generation no longer resolve.
type Generation struct {
	n atomic.Uint64
}

// Tick advances the generation and returns the new value.
func (g *Generation) Tick() uint64 {
	return g.n.Add(1)
}

// Current returns the current generation.
func (g *Generation) Current() uint64 {
	return g.n.Load()
}
