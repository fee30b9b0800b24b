package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by configs that can reject nonsensical values.
type validator interface {
	Validate() error
}

// load resolves a config file by name.
// Search order: customPath -> ~/.termfolio/configs/<name> -> ./configs/<name> -> embedded default.
// Files are decoded on top of the hardcoded defaults, so partial files only
// override what they mention. Only an explicit customPath reports errors;
// broken files found by searching are skipped.
func load[T any](name, customPath string, embedded []byte, defaults func() T) (T, error) {
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", name)}
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := decode(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults()
	if err := decode(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode[T any](data []byte, cfg *T) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if v, ok := any(cfg).(validator); ok {
		return v.Validate()
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termfolio", "configs", filename)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong.yaml", customPath, defaultPongYAML, DefaultPongConfig)
}

// LoadTetris loads Tetris configuration.
func LoadTetris(customPath string) (TetrisConfig, error) {
	return load("tetris.yaml", customPath, defaultTetrisYAML, DefaultTetrisConfig)
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return load("breakout.yaml", customPath, defaultBreakoutYAML, DefaultBreakoutConfig)
}

// LoadSite loads the portfolio site configuration.
func LoadSite(customPath string) (SiteConfig, error) {
	return load("site.yaml", customPath, defaultSiteYAML, DefaultSiteConfig)
}

var errNonPositive = errors.New("must be positive")

func positive(field string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("config: %s %w", field, errNonPositive)
	}
	return nil
}

// Validate rejects grids and timings that cannot produce a playable game.
func (c *SnakeConfig) Validate() error {
	return errors.Join(
		positive("grid.width", float64(c.Grid.Width)),
		positive("grid.height", float64(c.Grid.Height)),
		positive("timing.start_interval_ms", float64(c.Timing.StartInterval)),
		positive("timing.floor_ms", float64(c.Timing.MinInterval)),
	)
}

// Validate rejects non-positive geometry and speeds.
func (c *PongConfig) Validate() error {
	return errors.Join(
		positive("canvas.width", c.Canvas.Width),
		positive("canvas.height", c.Canvas.Height),
		positive("paddle.height", c.Paddle.Height),
		positive("ball.start_speed", c.Ball.StartSpeed),
		positive("ball.max_speed", c.Ball.MaxSpeed),
		positive("match.win_score", float64(c.Match.WinScore)),
	)
}

// Validate rejects boards too small to hold a piece.
func (c *TetrisConfig) Validate() error {
	var err error
	if c.Board.Width < 4 || c.Board.Height < 4 {
		err = fmt.Errorf("config: board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height)
	}
	return errors.Join(err,
		positive("timing.floor_ms", float64(c.Timing.MinDrop)),
		positive("scoring.lines_per_level", float64(c.Scoring.LinesPerLevel)),
	)
}

// Validate rejects layouts with no bricks or no lives.
func (c *BreakoutConfig) Validate() error {
	return errors.Join(
		positive("canvas.width", c.Canvas.Width),
		positive("canvas.height", c.Canvas.Height),
		positive("bricks.rows", float64(c.Bricks.Rows)),
		positive("bricks.cols", float64(c.Bricks.Cols)),
		positive("gameplay.lives", float64(c.Gameplay.Lives)),
		positive("ball.speed", c.Ball.Speed),
	)
}
