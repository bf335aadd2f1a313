// Package config provides YAML-based configuration loading and difficulty
// presets for the voyager simulation.
package config

// VoyagerConfig contains every tunable of the simulation core.
type VoyagerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Run        RunConfig        `yaml:"run"`
	Loop       LoopConfig       `yaml:"loop"`
	Player     PlayerConfig     `yaml:"player"`
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Variants   []VariantConfig  `yaml:"variants"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the player body physics. Units are world units
// and seconds.
type PhysicsConfig struct {
	BaseGravity     float64 `yaml:"base_gravity"`
	FallMultiplier  float64 `yaml:"fall_multiplier"` // Gravity scale while falling
	JumpImpulse     float64 `yaml:"jump_impulse"`
	MaxJumpVelocity float64 `yaml:"max_jump_velocity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	TargetSpeed     float64 `yaml:"target_speed"`   // Horizontal speed the body eases toward
	SmoothingRate   float64 `yaml:"smoothing_rate"` // Per-second easing factor
	LinearDrag      float64 `yaml:"linear_drag"`
}

// SpawnerConfig defines enemy formation generation.
type SpawnerConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"` // Seconds between formations
	VerticalGap   float64 `yaml:"vertical_gap"`   // Distance between formation members
	MoveSpeed     float64 `yaml:"move_speed"`     // Leftward speed of every obstacle
	SpawnMargin   float64 `yaml:"spawn_margin"`   // Distance beyond the right edge
	RetireMargin  float64 `yaml:"retire_margin"`  // Distance beyond the left edge
	MinFormation  int     `yaml:"min_formation"`
	MaxFormation  int     `yaml:"max_formation"`
	BandFraction  float64 `yaml:"band_fraction"` // Formation centers fall in ±fraction*halfHeight
}

// RunConfig defines scoring and the speed ramp.
type RunConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedRampRate float64 `yaml:"speed_ramp_rate"` // Speed gained per second of play
}

// LoopConfig defines how host frame deltas become simulation steps.
type LoopConfig struct {
	MaxStep   float64 `yaml:"max_step"`   // Largest delta accepted per Tick
	FixedStep float64 `yaml:"fixed_step"` // 0 = one variable step per Tick
}

// PlayerConfig defines the player craft.
type PlayerConfig struct {
	SpawnX       float64 `yaml:"spawn_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	HalfWidth    float64 `yaml:"half_width"`
	HalfHeight   float64 `yaml:"half_height"`
	KeepInBounds bool    `yaml:"keep_in_bounds"`
}

// PlayfieldConfig defines how much of the world a host shows.
type PlayfieldConfig struct {
	HalfHeight float64 `yaml:"half_height"` // Visible world units above and below the origin
}

// VariantConfig is one enemy ship template.
type VariantConfig struct {
	Name       string  `yaml:"name"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Glyph      string  `yaml:"glyph"`
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}
