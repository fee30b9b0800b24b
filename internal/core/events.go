package core

// Event is a discrete thing that happened during a step.
// The sound reactor and platform listen to events; games never read them back.
type Event int

const (
	EventNone Event = iota
	EventStart
	EventPause
	EventResume
	EventBounce
	EventScore
	EventEat
	EventLineClear
	EventLifeLost
	EventWin
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventBounce:
		return "bounce"
	case EventScore:
		return "score"
	case EventEat:
		return "eat"
	case EventLineClear:
		return "line_clear"
	case EventLifeLost:
		return "life_lost"
	case EventWin:
		return "win"
	case EventGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// Events collects events emitted during one step.
type Events []Event

// Emit appends an event.
func (es *Events) Emit(e Event) {
	*es = append(*es, e)
}

// Has reports whether the event was emitted.
func (es Events) Has(e Event) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

// ApplyToggle moves status through the start/pause state machine and records
// the matching event. It returns the new status.
func ApplyToggle(status Status, events *Events) Status {
	next := status.Toggle()
	switch {
	case status == StatusPlaying:
		events.Emit(EventPause)
	case status == StatusPaused:
		events.Emit(EventResume)
	case next == StatusPlaying:
		events.Emit(EventStart)
	}
	return next
}
