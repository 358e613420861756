package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:     0.5,
			JumpImpulse: -11.5,
			Speed:       6.2,
		},
		Obstacles: FlappyObstacles{
			Width: 78,
			Gap:   270,
		},
		Actor: FlappyActor{
			Width:       51,
			Height:      36,
			AnchorRatio: 0.1,
		},
		Field: FieldScale{
			CellWidth:  10,
			CellHeight: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
