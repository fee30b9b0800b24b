package terminal

import (
	"time"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/storage"
)

// Navigator moves the surrounding UI away from the terminal.
type Navigator interface {
	// Play switches to the named game.
	Play(gameID string) error
	// Exit closes the session.
	Exit()
}

// ThemeSetter reads and changes the active palette.
type ThemeSetter interface {
	Theme() string
	Themes() []string
	SetTheme(name string) error
}

// Context is what commands may reach outside the interpreter. Nil
// capabilities make the commands that need them report an error.
type Context struct {
	Nav     Navigator
	Themes  ThemeSetter
	Content storage.Catalog
	Owner   config.OwnerConfig
	Games   []registry.GameInfo
	Banner  string
	Now     func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
