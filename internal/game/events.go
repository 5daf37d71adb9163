// internal/game/events.go
//
// Fire-and-forget notification events for audio/visual collaborators.
// The session calls the Notifier synchronously after computing a transition's
// outcome; sinks must never block or panic back into the engine. The notifier
// is an injected handle owned by whoever builds the session — there is no
// package-level singleton.

package game

// Event identifies a sound/visual cue emitted by the session.
type Event string

const (
	EventFlip    Event = "flip"
	EventCorrect Event = "correct"
	EventWrong   Event = "wrong"
	EventWin     Event = "win"
	EventLose    Event = "lose"
)

// Notifier receives session events. Implementations must be non-blocking;
// a failed delivery must never affect game state.
type Notifier interface {
	Notify(Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
