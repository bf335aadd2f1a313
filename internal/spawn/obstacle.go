// Package spawn generates enemy formations on a timer, scrolls them across
// the playfield and retires them once they leave it.
package spawn

import (
	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
)

// Variant is an enemy ship template. The scheduler treats its size as an
// opaque constant supplied by the catalog.
type Variant struct {
	Name  string
	Half  core.Vec2 // Half extents of the ship's box
	Glyph string    // Presentation hint, unused by the simulation
}

// VariantsFromConfig converts the configured catalog.
func VariantsFromConfig(vs []config.VariantConfig) []Variant {
	out := make([]Variant, 0, len(vs))
	for _, v := range vs {
		out = append(out, Variant{
			Name:  v.Name,
			Half:  core.V(v.HalfWidth, v.HalfHeight),
			Glyph: v.Glyph,
		})
	}
	return out
}

// Obstacle is one enemy ship. Extents are fixed at creation; only the
// position changes afterwards.
type Obstacle struct {
	ID          uint64
	Position    core.Vec2
	Half        core.Vec2
	FormationID uint64
	Variant     int // Index into the scheduler's catalog
}

// AABB returns the obstacle's collision box.
func (o Obstacle) AABB() core.AABB {
	return core.NewAABB(o.Position, o.Half)
}

// Formation describes a batch of obstacles spawned together around a
// shared vertical center. It only exists while the batch is generated.
type Formation struct {
	ID        uint64
	CenterY   float64
	Size      int
	SpawnTime float64
}

// MemberOffset returns the vertical offset of member i from the center.
func (f Formation) MemberOffset(i int, gap float64) float64 {
	return (float64(i) - float64(f.Size-1)/2) * gap
}
