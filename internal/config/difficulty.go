package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed ramp
)

// presetScale holds the multipliers a preset applies to the loaded values.
type presetScale struct {
	ramp     float64
	interval float64
	move     float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {ramp: 0.5, interval: 1.25, move: 0.85},
	DifficultyNormal: {ramp: 1.0, interval: 1.0, move: 1.0},
	DifficultyHard:   {ramp: 2.0, interval: 0.75, move: 1.3},
	DifficultyFixed:  {ramp: 0.0, interval: 1.0, move: 1.0},
}

// ParsePreset converts a CLI string into a preset.
// An empty string means "keep the configured preset".
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(s)
	if _, ok := presetScales[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed): %w", s, ErrInvalidConfig)
	}
	return p, nil
}

// ApplyPreset scales the run and spawner sections of cfg for the preset and
// records it in cfg.Difficulty. Unknown presets leave cfg untouched.
func ApplyPreset(cfg *VoyagerConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Difficulty.Preset = preset
	cfg.Run.SpeedRampRate *= scale.ramp
	cfg.Spawner.SpawnInterval *= scale.interval
	cfg.Spawner.MoveSpeed *= scale.move
}

// Resolve returns cfg with its difficulty applied. A non-empty override
// replaces the preset named in the file.
func Resolve(cfg VoyagerConfig, override DifficultyPreset) VoyagerConfig {
	preset := cfg.Difficulty.Preset
	if override != "" {
		preset = override
	}
	if preset == "" {
		preset = DifficultyNormal
	}
	ApplyPreset(&cfg, preset)
	return cfg
}
