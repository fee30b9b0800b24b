package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/site.yaml
var defaultSiteYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{Width: 20, Height: 20},
		Timing: SnakeTiming{
			StartInterval: 150,
			Step:          5,
			MinInterval:   50,
		},
		Food: SnakeFood{Points: 10},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Canvas: CanvasConfig{Width: 600, Height: 400},
		Paddle: PongPaddle{Width: 10, Height: 80, Inset: 20, Speed: 6},
		Ball: PongBall{
			Size:           10,
			StartSpeed:     5,
			SpeedStep:      0.5,
			MaxSpeed:       12,
			MaxBounceAngle: 45,
		},
		AI:    PongAI{SpeedFactor: 0.75},
		Match: PongMatch{WinScore: 5},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board:   TetrisBoard{Width: 10, Height: 20},
		Timing:  TetrisTiming{BaseDrop: 1000, Step: 100, MinDrop: 100},
		Scoring: TetrisScoring{LinePoints: 100, LinesPerLevel: 10},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Canvas: CanvasConfig{Width: 480, Height: 320},
		Paddle: BreakoutPaddle{Width: 75, Height: 10, BottomOffset: 10, Speed: 7},
		Ball:   BreakoutBall{Radius: 5, Speed: 4, MaxBounceAngle: 60},
		Bricks: BreakoutBricks{
			Rows:       5,
			Cols:       8,
			Height:     16,
			Padding:    4,
			OffsetTop:  32,
			OffsetLeft: 16,
		},
		Gameplay: BreakoutGameplay{Lives: 3, BrickPoints: 10},
	}
}

// DefaultSiteConfig returns the site configuration used when no YAML loads.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Owner: OwnerConfig{
			Name:   "Anonymous",
			Handle: "guest",
			Title:  "Developer",
		},
		Theme: ThemeConfig{Default: "dark"},
		Sound: SoundConfig{Enabled: true, Music: true},
		Storage: StorageConfig{
			DBPath:     "termfolio.db",
			ResumeFile: "resume.pdf",
		},
		Server:   ServerConfig{Host: "0.0.0.0", Port: 2222, HostKeyPath: ".ssh/termfolio_ed25519"},
		Terminal: TerminalConfig{Prompt: "guest@termfolio:~$"},
	}
}
