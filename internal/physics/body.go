// Package physics implements the player craft's kinematic body.
// Integration is deterministic: identical inputs give identical states.
package physics

import (
	"math"

	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
)

// Params are the tunables of a Body.
type Params struct {
	BaseGravity     float64 // Downward acceleration, world units/s²
	FallMultiplier  float64 // Gravity scale applied while falling
	JumpImpulse     float64 // Upward velocity set by a jump
	MaxJumpVelocity float64 // Upper clamp of vertical velocity
	MaxFallSpeed    float64 // Lower clamp is -MaxFallSpeed
	TargetSpeed     float64 // Horizontal speed the body eases toward
	SmoothingRate   float64 // Easing factor per second
	LinearDrag      float64 // Velocity damping per second
}

// NewParams converts the physics config section.
func NewParams(c config.PhysicsConfig) Params {
	return Params{
		BaseGravity:     c.BaseGravity,
		FallMultiplier:  c.FallMultiplier,
		JumpImpulse:     c.JumpImpulse,
		MaxJumpVelocity: c.MaxJumpVelocity,
		MaxFallSpeed:    c.MaxFallSpeed,
		TargetSpeed:     c.TargetSpeed,
		SmoothingRate:   c.SmoothingRate,
		LinearDrag:      c.LinearDrag,
	}
}

// Body is the player craft: a box with position and velocity.
// A body that is not simulated, or not alive, ignores Integrate and holds
// zero velocity.
type Body struct {
	Position core.Vec2
	Velocity core.Vec2
	Half     core.Vec2 // Collision half extents

	params       Params
	spawn        core.Vec2
	alive        bool
	simulated    bool
	gravityScale float64 // Scale used by the last integration
}

// NewBody creates a body parked at spawn. It stays inert until Reset.
func NewBody(spawn, half core.Vec2, p Params) *Body {
	return &Body{
		Position:     spawn,
		Half:         half,
		params:       p,
		spawn:        spawn,
		alive:        true,
		gravityScale: 1,
	}
}

// Params returns the body's tunables.
func (b *Body) Params() Params {
	return b.params
}

// Reset returns the body to its spawn point, alive and simulated, at rest.
func (b *Body) Reset() {
	b.Position = b.spawn
	b.Velocity = core.Vec2{}
	b.alive = true
	b.simulated = true
	b.gravityScale = 1
}

// Freeze kills the body: no more integration, velocity zeroed.
// Its position is kept so the presenter can still draw the wreck.
func (b *Body) Freeze() {
	b.alive = false
	b.simulated = false
	b.Velocity = core.Vec2{}
}

// Alive reports whether the body has not been frozen since the last Reset.
func (b *Body) Alive() bool {
	return b.alive
}

// Simulated reports whether Integrate currently has any effect.
func (b *Body) Simulated() bool {
	return b.simulated && b.alive
}

// GravityScale returns the gravity multiplier used by the last integration.
func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

// AABB returns the body's collision box.
func (b *Body) AABB() core.AABB {
	return core.NewAABB(b.Position, b.Half)
}

// Integrate advances the body by dt seconds and returns the new position
// and velocity. Negative or non-finite dt is treated as 0. A jump sets the
// vertical velocity to at least JumpImpulse and keeps gravity at base scale
// for the frame.
func (b *Body) Integrate(dt float64, jumpRequested bool) (core.Vec2, core.Vec2) {
	if !b.Simulated() {
		b.Velocity = core.Vec2{}
		return b.Position, b.Velocity
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	p := b.params
	v := b.Velocity

	// Asymmetric gravity: floaty rise, snappy fall
	b.gravityScale = 1
	if !jumpRequested && v.Y < 0 {
		b.gravityScale = p.FallMultiplier
	}
	v.Y -= p.BaseGravity * b.gravityScale * dt

	if p.LinearDrag > 0 {
		v = v.Scale(1 / (1 + p.LinearDrag*dt))
	}

	// Ease toward the target horizontal speed; the factor saturates at 1
	// so a long step never overshoots.
	ease := math.Min(p.SmoothingRate*dt, 1)
	v.X += (p.TargetSpeed - v.X) * ease

	if jumpRequested {
		v.Y = math.Max(p.JumpImpulse, v.Y)
	}

	v.Y = core.ClampF(v.Y, -p.MaxFallSpeed, p.MaxJumpVelocity)

	b.Velocity = v
	b.Position = b.Position.Add(v.Scale(dt))
	return b.Position, b.Velocity
}

// Confine keeps the body's box inside pf. Velocity pointing out of the
// field on a clamped axis is zeroed. Returns true if the body was moved.
func (b *Body) Confine(pf core.Playfield) bool {
	moved := false

	maxX := pf.HalfWidth - b.Half.X
	maxY := pf.HalfHeight - b.Half.Y
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}

	if b.Position.X > maxX {
		b.Position.X = maxX
		b.Velocity.X = math.Min(b.Velocity.X, 0)
		moved = true
	} else if b.Position.X < -maxX {
		b.Position.X = -maxX
		b.Velocity.X = math.Max(b.Velocity.X, 0)
		moved = true
	}

	if b.Position.Y > maxY {
		b.Position.Y = maxY
		b.Velocity.Y = math.Min(b.Velocity.Y, 0)
		moved = true
	} else if b.Position.Y < -maxY {
		b.Position.Y = -maxY
		b.Velocity.Y = math.Max(b.Velocity.Y, 0)
		moved = true
	}

	return moved
}
