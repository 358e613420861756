// Package config provides YAML/TOML game configuration loading, environment
// overrides and difficulty management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// FlappyConfig contains all tuning for the game. Lengths are in field units;
// the field scale maps them onto terminal cells.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics" toml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles" toml:"obstacles"`
	Actor      FlappyActor      `yaml:"actor" toml:"actor"`
	Field      FieldScale       `yaml:"field" toml:"field"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// FlappyPhysics defines the per-tick physics constants.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse" toml:"jump_impulse"` // negative = up
	Speed       float64 `yaml:"speed" toml:"speed"`               // obstacle scroll per tick
}

// FlappyObstacles defines the fixed obstacle geometry.
type FlappyObstacles struct {
	Width float64 `yaml:"width" toml:"width"`
	Gap   float64 `yaml:"gap" toml:"gap"`
}

// FlappyActor defines the actor hitbox and its horizontal anchor.
type FlappyActor struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	// AnchorRatio places the actor at this fraction of the field width.
	AnchorRatio float64 `yaml:"anchor_ratio" toml:"anchor_ratio"`
}

// FieldScale is the number of field units covered by one terminal cell.
type FieldScale struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // added to speed at max difficulty
}

// Validate reports every setting that would make the simulation meaningless.
// Undersized fields are not an error; the simulation clamps those.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative, got %v", c.Physics.JumpImpulse))
	}
	if c.Physics.Speed <= 0 {
		errs = append(errs, fmt.Errorf("physics.speed must be positive, got %v", c.Physics.Speed))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Gap <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.width and obstacles.gap must be positive"))
	}
	if c.Actor.Width <= 0 || c.Actor.Height <= 0 {
		errs = append(errs, fmt.Errorf("actor.width and actor.height must be positive"))
	}
	if c.Actor.AnchorRatio <= 0 || c.Actor.AnchorRatio >= 1 {
		errs = append(errs, fmt.Errorf("actor.anchor_ratio must be in (0, 1), got %v", c.Actor.AnchorRatio))
	}
	if c.Field.CellWidth <= 0 || c.Field.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("field.cell_width and field.cell_height must be positive"))
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid flappy config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
