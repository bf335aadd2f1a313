// Package collision tests the player's box against the live obstacles.
package collision

import "github.com/vovakirdan/space-voyager/internal/core"

// Detector is the stateless overlap checker. The zero value is ready to use.
type Detector struct{}

// NewDetector creates a detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Check reports whether player overlaps any obstacle. Touching edges do
// not count. The scan stops at the first hit.
func (d *Detector) Check(player core.AABB, obstacles []core.AABB) bool {
	return d.FirstHit(player, obstacles) >= 0
}

// FirstHit returns the index of the first obstacle overlapping player,
// or -1 if there is none.
func (d *Detector) FirstHit(player core.AABB, obstacles []core.AABB) int {
	for i, o := range obstacles {
		if player.Overlaps(o) {
			return i
		}
	}
	return -1
}
