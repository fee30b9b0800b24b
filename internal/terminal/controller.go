package terminal

import "sync"

// Controller tracks whether the terminal overlay is open. Each UI tree owns
// its own Controller; there is no package-level instance.
type Controller struct {
	mu       sync.Mutex
	open     bool
	onChange func(open bool)
}

// NewController returns a controller in the given state. onChange, when
// set, runs after every state change.
func NewController(open bool, onChange func(open bool)) *Controller {
	return &Controller{open: open, onChange: onChange}
}

// IsOpen reports the current state.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Open shows the terminal.
func (c *Controller) Open() { c.set(true) }

// Close hides the terminal.
func (c *Controller) Close() { c.set(false) }

// Toggle flips the state and returns the new one.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	c.open = !c.open
	open, fn := c.open, c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(open)
	}
	return open
}

func (c *Controller) set(open bool) {
	c.mu.Lock()
	changed := c.open != open
	c.open = open
	fn := c.onChange
	c.mu.Unlock()
	if changed && fn != nil {
		fn(open)
	}
}
