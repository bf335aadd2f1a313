package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks the values the simulation cannot run with.
// An empty variant list is allowed: spawning then degrades to a no-op.
func (c VoyagerConfig) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{positive(c.Spawner.SpawnInterval), "spawner.spawn_interval", "must be > 0"},
		{nonNegative(c.Spawner.MoveSpeed), "spawner.move_speed", "must be >= 0"},
		{c.Spawner.MinFormation >= 1, "spawner.min_formation", "must be >= 1"},
		{c.Spawner.MaxFormation >= c.Spawner.MinFormation, "spawner.max_formation", "must be >= min_formation"},
		{nonNegative(c.Spawner.BandFraction) && c.Spawner.BandFraction <= 1, "spawner.band_fraction", "must be within [0, 1]"},
		{nonNegative(c.Run.BaseSpeed), "run.base_speed", "must be >= 0"},
		{nonNegative(c.Run.SpeedRampRate), "run.speed_ramp_rate", "must be >= 0"},
		{positive(c.Loop.MaxStep), "loop.max_step", "must be > 0"},
		{nonNegative(c.Loop.FixedStep), "loop.fixed_step", "must be >= 0"},
		{nonNegative(c.Physics.BaseGravity), "physics.base_gravity", "must be >= 0"},
		{nonNegative(c.Physics.MaxFallSpeed), "physics.max_fall_speed", "must be >= 0"},
		{nonNegative(c.Physics.MaxJumpVelocity), "physics.max_jump_velocity", "must be >= 0"},
		{positive(c.Player.HalfWidth) && positive(c.Player.HalfHeight), "player", "half extents must be > 0"},
		{positive(c.Playfield.HalfHeight), "playfield.half_height", "must be > 0"},
	}

	var errs []error
	for _, chk := range checks {
		if !chk.ok {
			errs = append(errs, ValidationError{Field: chk.field, Message: chk.message})
		}
	}
	for i, v := range c.Variants {
		if !positive(v.HalfWidth) || !positive(v.HalfHeight) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variants[%d]", i),
				Message: fmt.Sprintf("%q half extents must be > 0", v.Name),
			})
		}
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
