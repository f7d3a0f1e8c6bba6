// Package config provides YAML-based game configuration loading for the
// deep-sea scenes, with embedded defaults and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// BubblesConfig contains all configuration for the ambient bubble scene.
type BubblesConfig struct {
	Pool    BubblesPool    `yaml:"pool"`
	Physics BubblesPhysics `yaml:"physics"`
	Render  BubblesRender  `yaml:"render"`
}

// BubblesPool defines the particle pool and spawn ranges.
type BubblesPool struct {
	Count      int     `yaml:"count"`
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MinOpacity float64 `yaml:"min_opacity"`
	MaxOpacity float64 `yaml:"max_opacity"`
	MaxDriftX  float64 `yaml:"max_drift_x"` // |vx| bound at spawn
	MaxDriftY  float64 `yaml:"max_drift_y"` // vy in [0, max] at spawn
}

// BubblesPhysics defines per-frame physics constants.
type BubblesPhysics struct {
	Gravity  float64 `yaml:"gravity"`
	Friction float64 `yaml:"friction"`
	Damping  float64 `yaml:"damping"`
	FadeZone float64 `yaml:"fade_zone"` // Bottom band (px) in which bubbles fade out
}

// BubblesRender defines how logical pixels map onto terminal cells.
type BubblesRender struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Gain       float64 `yaml:"gain"` // Opacity multiplier for terminal visibility
}

// BrickBreakerConfig contains all configuration for the brick breaker.
type BrickBreakerConfig struct {
	Field    BrickField    `yaml:"field"`
	Bricks   BrickLayout   `yaml:"bricks"`
	Paddle   BrickPaddle   `yaml:"paddle"`
	Ball     BrickBall     `yaml:"ball"`
	Gameplay BrickGameplay `yaml:"gameplay"`
}

// BrickField is the logical play field size.
type BrickField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BrickLayout defines the brick grid geometry.
type BrickLayout struct {
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	OffsetTop  float64 `yaml:"offset_top"`
	OffsetLeft float64 `yaml:"offset_left"`
}

// BrickPaddle defines the paddle.
type BrickPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"`
	KeyStep      float64 `yaml:"key_step"`    // Target shift per key press
	SpringFreq   float64 `yaml:"spring_freq"` // harmonica angular frequency
	SpringDamp   float64 `yaml:"spring_damp"` // harmonica damping ratio
}

// BrickBall defines the ball and its speed curve.
type BrickBall struct {
	Radius       float64 `yaml:"radius"`
	BaseSpeed    float64 `yaml:"base_speed"`     // Per-axis speed at level 1
	LevelSpeedUp float64 `yaml:"level_speed_up"` // Added per level
	MaxSpeedBase float64 `yaml:"max_speed_base"` // Max per-axis speed = base + level
	PaddleBoost  float64 `yaml:"paddle_boost"`   // Multiplier on paddle hit
	MinAxisSpeed float64 `yaml:"min_axis_speed"` // Floor after paddle hit
	WallDamping  float64 `yaml:"wall_damping"`
}

// BrickGameplay defines lives, scoring and levels.
type BrickGameplay struct {
	Lives        int `yaml:"lives"`
	PointsPerHit int `yaml:"points_per_hit"` // Multiplied by the current level
	MaxLevel     int `yaml:"max_level"`      // Levels past this re-issue the last pattern
}

// Validate checks ranges the simulation relies on.
func (c BubblesConfig) Validate() error {
	switch {
	case c.Pool.Count <= 0:
		return fmt.Errorf("%w: bubbles pool.count must be positive, got %d", ErrInvalid, c.Pool.Count)
	case c.Pool.MinRadius <= 0 || c.Pool.MinRadius > c.Pool.MaxRadius:
		return fmt.Errorf("%w: bubbles radius range [%v, %v]", ErrInvalid, c.Pool.MinRadius, c.Pool.MaxRadius)
	case c.Pool.MinOpacity < 0 || c.Pool.MaxOpacity > 1 || c.Pool.MinOpacity > c.Pool.MaxOpacity:
		return fmt.Errorf("%w: bubbles opacity range [%v, %v]", ErrInvalid, c.Pool.MinOpacity, c.Pool.MaxOpacity)
	case c.Physics.Friction <= 0 || c.Physics.Friction > 1:
		return fmt.Errorf("%w: bubbles friction must be in (0, 1], got %v", ErrInvalid, c.Physics.Friction)
	case c.Physics.Damping < 0 || c.Physics.Damping > 1:
		return fmt.Errorf("%w: bubbles damping must be in [0, 1], got %v", ErrInvalid, c.Physics.Damping)
	case c.Physics.FadeZone <= 0:
		return fmt.Errorf("%w: bubbles fade_zone must be positive", ErrInvalid)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: bubbles cell size must be positive", ErrInvalid)
	}
	return nil
}

// Validate checks ranges the simulation relies on.
func (c BrickBreakerConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: brickbreaker field must be positive", ErrInvalid)
	case c.Bricks.Columns <= 0 || c.Bricks.Rows <= 0:
		return fmt.Errorf("%w: brickbreaker grid must be positive, got %dx%d", ErrInvalid, c.Bricks.Columns, c.Bricks.Rows)
	case c.Paddle.Width <= 0 || c.Paddle.Width >= c.Field.Width:
		return fmt.Errorf("%w: brickbreaker paddle width %v", ErrInvalid, c.Paddle.Width)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: brickbreaker ball radius must be positive", ErrInvalid)
	case c.Ball.BaseSpeed <= 0:
		return fmt.Errorf("%w: brickbreaker base_speed must be positive", ErrInvalid)
	case c.Ball.PaddleBoost < 1:
		return fmt.Errorf("%w: brickbreaker paddle_boost must be >= 1", ErrInvalid)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: brickbreaker lives must be positive", ErrInvalid)
	case c.Gameplay.MaxLevel <= 0:
		return fmt.Errorf("%w: brickbreaker max_level must be positive", ErrInvalid)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
