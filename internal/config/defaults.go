package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

//go:embed defaults/brickbreaker.yaml
var defaultBrickBreakerYAML []byte

// DefaultBubblesConfig returns the default ambient bubble configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Pool: BubblesPool{
			Count:      25,
			MinRadius:  2,
			MaxRadius:  8,
			MinOpacity: 0.1,
			MaxOpacity: 0.3,
			MaxDriftX:  0.5,
			MaxDriftY:  0.5,
		},
		Physics: BubblesPhysics{
			Gravity:  0.02,
			Friction: 0.99,
			Damping:  0.7,
			FadeZone: 50,
		},
		Render: BubblesRender{
			CellWidth:  8,
			CellHeight: 16,
			Gain:       3,
		},
	}
}

// DefaultBrickBreakerConfig returns the default brick breaker configuration.
func DefaultBrickBreakerConfig() BrickBreakerConfig {
	return BrickBreakerConfig{
		Field: BrickField{
			Width:  400,
			Height: 400,
		},
		Bricks: BrickLayout{
			Columns:    7,
			Rows:       5,
			Width:      46,
			Height:     16,
			Padding:    6,
			OffsetTop:  40,
			OffsetLeft: 21,
		},
		Paddle: BrickPaddle{
			Width:        75,
			Height:       10,
			BottomMargin: 10,
			KeyStep:      40,
			SpringFreq:   8,
			SpringDamp:   0.9,
		},
		Ball: BrickBall{
			Radius:       6,
			BaseSpeed:    3,
			LevelSpeedUp: 0.5,
			MaxSpeedBase: 6,
			PaddleBoost:  1.05,
			MinAxisSpeed: 1.5,
			WallDamping:  0.7,
		},
		Gameplay: BrickGameplay{
			Lives:        4,
			PointsPerHit: 10,
			MaxLevel:     5,
		},
	}
}
