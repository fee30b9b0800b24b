// Package config provides YAML-based configuration for the games and the
// portfolio site, plus difficulty presets.
package config

import "time"

// Millis is a duration expressed in milliseconds in YAML.
type Millis int

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// CanvasConfig is the logical size of a pixel-space game.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Grid   SnakeGrid   `yaml:"grid"`
	Timing SnakeTiming `yaml:"timing"`
	Food   SnakeFood   `yaml:"food"`
}

// SnakeGrid defines the board size in cells.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeTiming defines how fast the snake moves.
type SnakeTiming struct {
	StartInterval Millis `yaml:"start_interval_ms"`
	Step          Millis `yaml:"step_ms"`  // interval reduction per food
	MinInterval   Millis `yaml:"floor_ms"` // interval never drops below this
}

// SnakeFood defines food scoring.
type SnakeFood struct {
	Points int `yaml:"points"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Paddle PongPaddle   `yaml:"paddle"`
	Ball   PongBall     `yaml:"ball"`
	AI     PongAI       `yaml:"ai"`
	Match  PongMatch    `yaml:"match"`
}

// PongPaddle defines paddle geometry and speed (pixels per tick).
type PongPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Inset  float64 `yaml:"inset"` // distance from the side wall
	Speed  float64 `yaml:"speed"`
}

// PongBall defines ball size and speed progression (pixels per tick).
type PongBall struct {
	Size           float64 `yaml:"size"`
	StartSpeed     float64 `yaml:"start_speed"`
	SpeedStep      float64 `yaml:"speed_step"`
	MaxSpeed       float64 `yaml:"max_speed"`
	MaxBounceAngle float64 `yaml:"max_bounce_deg"`
}

// PongAI defines the computer opponent.
type PongAI struct {
	SpeedFactor float64 `yaml:"speed_factor"` // fraction of paddle speed
}

// PongMatch defines the win condition.
type PongMatch struct {
	WinScore int `yaml:"win_score"`
}

// TetrisConfig contains all configuration for Tetris.
type TetrisConfig struct {
	Board   TetrisBoard   `yaml:"board"`
	Timing  TetrisTiming  `yaml:"timing"`
	Scoring TetrisScoring `yaml:"scoring"`
}

// TetrisBoard defines the well size in cells.
type TetrisBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TetrisTiming defines the gravity curve.
type TetrisTiming struct {
	BaseDrop Millis `yaml:"base_drop_ms"`
	Step     Millis `yaml:"step_ms"` // reduction per level
	MinDrop  Millis `yaml:"floor_ms"`
}

// TetrisScoring defines line scoring and leveling.
type TetrisScoring struct {
	LinePoints    int `yaml:"line_points"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// BreakoutConfig contains all configuration for Breakout.
type BreakoutConfig struct {
	Canvas   CanvasConfig     `yaml:"canvas"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Ball     BreakoutBall     `yaml:"ball"`
	Bricks   BreakoutBricks   `yaml:"bricks"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutPaddle defines paddle geometry and speed (pixels per tick).
type BreakoutPaddle struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	Speed        float64 `yaml:"speed"`
}

// BreakoutBall defines the ball.
type BreakoutBall struct {
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`
	MaxBounceAngle float64 `yaml:"max_bounce_deg"`
}

// BreakoutBricks defines the brick wall layout.
type BreakoutBricks struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	OffsetTop  float64 `yaml:"offset_top"`
	OffsetLeft float64 `yaml:"offset_left"`
}

// BreakoutGameplay defines lives and scoring.
type BreakoutGameplay struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}
