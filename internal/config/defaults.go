package config

import (
	_ "embed"
)

//go:embed defaults/voyager.yaml
var defaultVoyagerYAML []byte

// DefaultConfig returns the hard-coded default configuration. It mirrors
// the embedded defaults/voyager.yaml and is the last fallback of Load.
func DefaultConfig() VoyagerConfig {
	return VoyagerConfig{
		Physics: PhysicsConfig{
			BaseGravity:     6.867,
			FallMultiplier:  1.1,
			JumpImpulse:     2.5,
			MaxJumpVelocity: 2.5,
			MaxFallSpeed:    2.0,
			TargetSpeed:     0,
			SmoothingRate:   3.0,
			LinearDrag:      0.5,
		},
		Spawner: SpawnerConfig{
			SpawnInterval: 3.0,
			VerticalGap:   3.0,
			MoveSpeed:     3.0,
			SpawnMargin:   2.0,
			RetireMargin:  2.0,
			MinFormation:  2,
			MaxFormation:  4,
			BandFraction:  0.5,
		},
		Run: RunConfig{
			BaseSpeed:     5.0,
			SpeedRampRate: 0.1,
		},
		Loop: LoopConfig{
			MaxStep:   0.1,
			FixedStep: 0,
		},
		Player: PlayerConfig{
			SpawnX:       -7,
			SpawnY:       0,
			HalfWidth:    0.5,
			HalfHeight:   0.3,
			KeepInBounds: true,
		},
		Playfield: PlayfieldConfig{
			HalfHeight: 5.0,
		},
		Variants: []VariantConfig{
			{Name: "scout", HalfWidth: 0.4, HalfHeight: 0.3, Glyph: "<"},
			{Name: "fighter", HalfWidth: 0.6, HalfHeight: 0.4, Glyph: "◄"},
			{Name: "cruiser", HalfWidth: 0.9, HalfHeight: 0.5, Glyph: "▓"},
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultVoyagerYAML
}
