package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, Up arrow (Tetris: rotate)
	ActionDown          // S, Down arrow
	ActionLeft          // A, Left arrow
	ActionRight         // D, Right arrow
	ActionToggle        // Space - start, pause, resume, restart
	ActionBack          // B, Escape - leave the game
	ActionQuit          // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction bound to the action, or DirNone.
func (a Action) Direction() Direction {
	switch a {
	case ActionUp:
		return DirUp
	case ActionDown:
		return DirDown
	case ActionLeft:
		return DirLeft
	case ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// Direction is a grid heading.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the unit grid offset for the direction (y grows downward).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// InputFrame represents the input state for a single simulation tick.
type InputFrame struct {
	// Actions holds every action that is down (held or tapped) this tick.
	Actions map[Action]bool

	// Pressed holds the actions whose press edge happened since the last tick.
	Pressed map[Action]bool

	// Dir is the queued grid direction, DirNone when nothing was queued.
	Dir Direction

	// Pointer is a touch/mouse position normalized to [0,1] on both axes.
	Pointer    Vec
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Set marks an action as pressed and held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Pressed[a] = true
	if d := a.Direction(); d != DirNone {
		f.Dir = d
	}
}

// Has returns true if the action is down this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// JustPressed returns true if the action's press edge happened this frame.
func (f InputFrame) JustPressed(a Action) bool {
	if f.Pressed == nil {
		return false
	}
	return f.Pressed[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Pressed)
	f.Dir = DirNone
	f.HasPointer = false
}

// SwipeThreshold is the normalized distance a touch must travel before it
// counts as a directional swipe.
const SwipeThreshold = 0.05

// Latch records raw input edges between simulation ticks.
//
// Key-down/up edges update a held set; Tap covers platforms that only report
// presses. Directional presses also feed a single queued direction, which
// ignores an exact reversal of the current heading. Snapshot hands the
// accumulated state to the rule step and clears the per-tick edges.
type Latch struct {
	mu      sync.Mutex
	held    map[Action]bool
	pressed map[Action]bool
	taps    map[Action]bool
	queued  Direction
	heading Direction

	pointer    Vec
	hasPointer bool

	touchStart Vec
	touching   bool
}

// NewLatch creates an empty latch.
func NewLatch() *Latch {
	return &Latch{
		held:    make(map[Action]bool),
		pressed: make(map[Action]bool),
		taps:    make(map[Action]bool),
	}
}

// Press records a key-down edge. Repeated presses while held are not new edges.
// A directional press hands control back from the pointer to the keyboard.
func (l *Latch) Press(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held[a] {
		l.pressed[a] = true
	}
	l.held[a] = true
	l.steerLocked(a)
}

// Release records a key-up edge.
func (l *Latch) Release(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, a)
}

// Tap records a press that releases itself after the next snapshot.
func (l *Latch) Tap(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pressed[a] = true
	l.taps[a] = true
	l.steerLocked(a)
}

func (l *Latch) steerLocked(a Action) {
	d := a.Direction()
	if d == DirNone {
		return
	}
	l.hasPointer = false
	l.queueLocked(d)
}

// QueueDirection sets the queued direction unless it reverses the heading.
// Returns false when the direction was ignored.
func (l *Latch) QueueDirection(d Direction) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.queueLocked(d)
}

func (l *Latch) queueLocked(d Direction) bool {
	if d == DirNone {
		return false
	}
	if l.heading != DirNone && d == l.heading.Opposite() {
		return false
	}
	l.queued = d
	return true
}

// SetHeading tells the latch the direction the player is currently travelling.
func (l *Latch) SetHeading(d Direction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.heading = d
}

// Point records an absolute pointer position, normalized to [0,1].
func (l *Latch) Point(x, y float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pointer = Vec{X: ClampF(x, 0, 1), Y: ClampF(y, 0, 1)}
	l.hasPointer = true
}

// ClearPointer forgets the pointer position.
func (l *Latch) ClearPointer() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hasPointer = false
}

// TouchStart begins a touch gesture at a normalized position.
func (l *Latch) TouchStart(x, y float64) {
	l.mu.Lock()
	l.touchStart = Vec{X: x, Y: y}
	l.touching = true
	l.mu.Unlock()

	l.Point(x, y)
}

// TouchMove continues a touch gesture. Once the finger travels past
// SwipeThreshold the movement is queued as a swipe and the gesture origin
// moves to the current point.
func (l *Latch) TouchMove(x, y float64) {
	l.Point(x, y)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.touching {
		return
	}
	if d, _ := l.swipeLocked(x-l.touchStart.X, y-l.touchStart.Y); d != DirNone {
		l.touchStart = Vec{X: x, Y: y}
	}
}

// Swipe translates a normalized movement delta into a queued direction along
// its dominant axis. Deltas shorter than SwipeThreshold yield DirNone; the
// bool reports whether the direction was queued.
func (l *Latch) Swipe(dx, dy float64) (Direction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.swipeLocked(dx, dy)
}

func (l *Latch) swipeLocked(dx, dy float64) (Direction, bool) {
	if dx*dx+dy*dy < SwipeThreshold*SwipeThreshold {
		return DirNone, false
	}

	var d Direction
	switch {
	case absF(dx) >= absF(dy) && dx > 0:
		d = DirRight
	case absF(dx) >= absF(dy):
		d = DirLeft
	case dy > 0:
		d = DirDown
	default:
		d = DirUp
	}
	return d, l.queueLocked(d)
}

// TouchEnd finishes a touch gesture.
func (l *Latch) TouchEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.touching = false
}

// Snapshot returns the input for the current tick and clears per-tick edges.
func (l *Latch) Snapshot() InputFrame {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := NewInputFrame()
	for a := range l.held {
		f.Actions[a] = true
	}
	for a := range l.taps {
		f.Actions[a] = true
	}
	for a := range l.pressed {
		f.Pressed[a] = true
	}
	f.Dir = l.queued
	f.Pointer = l.pointer
	f.HasPointer = l.hasPointer

	clear(l.pressed)
	clear(l.taps)
	l.queued = DirNone
	return f
}

// Reset forgets all held keys, queued input and gestures.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.held)
	clear(l.pressed)
	clear(l.taps)
	l.queued = DirNone
	l.heading = DirNone
	l.hasPointer = false
	l.touching = false
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
